package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/learnkit/internal/client/auth"
	"github.com/dmitrijs2005/learnkit/internal/client/models"
)

func want(args []string, n int, syntax string) error {
	if len(args) < n {
		return fmt.Errorf("%w: %s", errUsage, syntax)
	}
	return nil
}

func (a *App) Maps(ctx context.Context, args []string) error {
	maps, err := a.courses.Maps(ctx)
	a.track(err)
	if err != nil {
		return err
	}
	return a.printJSON(maps)
}

func (a *App) Course(ctx context.Context, args []string) error {
	if err := want(args, 1, "course <courseId>"); err != nil {
		return err
	}
	c, err := a.courses.Course(ctx, args[0])
	a.track(err)
	if err != nil {
		return err
	}
	return a.printJSON(c)
}

func (a *App) Start(ctx context.Context, args []string) error {
	if err := want(args, 1, "start <courseId>"); err != nil {
		return err
	}
	err := a.courses.Start(ctx, args[0])
	a.track(err)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Course %s started\n", args[0])
	return nil
}

func (a *App) Complete(ctx context.Context, args []string) error {
	if err := want(args, 2, "complete <courseId> <stepId> [answer=<n>] [tx=<hash>]"); err != nil {
		return err
	}
	payload, err := models.StepPayloadFromArgs(args[2:])
	if err != nil {
		return err
	}
	res, err := a.courses.CompleteStep(ctx, args[0], args[1], payload)
	a.track(err)
	if err != nil {
		return err
	}
	return a.printJSON(res)
}

func (a *App) Progress(ctx context.Context, args []string) error {
	if len(args) > 0 {
		p, err := a.courses.CourseProgress(ctx, args[0])
		a.track(err)
		if err != nil {
			return err
		}
		if p == nil {
			fmt.Fprintf(a.out, "Course %s not started\n", args[0])
			return nil
		}
		return a.printJSON(p)
	}

	view, err := a.courses.Progress(ctx)
	a.track(err)
	if err != nil {
		return err
	}
	if view.Offline {
		a.setMode(ModeOffline)
		if len(view.Items) == 0 {
			fmt.Fprintln(a.out, "Backend unreachable, no local progress cached")
			return nil
		}
		fmt.Fprintf(a.out, "Backend unreachable, showing local progress as of %s\n", view.AsOf.Format(time.RFC3339))
	}
	return a.printJSON(view.Items)
}

func (a *App) Nonce(ctx context.Context, args []string) error {
	if err := want(args, 1, "nonce <address>"); err != nil {
		return err
	}
	nonce, err := a.api.GetWalletNonce(ctx, args[0])
	a.track(err)
	if err != nil {
		return err
	}
	return a.printJSON(models.WalletNonce{Nonce: nonce})
}

func (a *App) Link(ctx context.Context, args []string) error {
	if err := want(args, 1, "link <address>"); err != nil {
		return err
	}
	res, err := a.wallets.Link(ctx, args[0], a.signer)
	a.track(err)
	if err != nil {
		return err
	}
	return a.printJSON(res)
}

func (a *App) Wallets(ctx context.Context, args []string) error {
	st, err := a.wallets.Status(ctx)
	a.track(err)
	if err != nil {
		return err
	}
	if !st.Linked {
		fmt.Fprintln(a.out, "No wallet linked yet")
		return nil
	}
	return a.printJSON(st)
}

func (a *App) Verify(ctx context.Context, args []string) error {
	if err := want(args, 2, "verify <courseId> <stepId>"); err != nil {
		return err
	}
	res, err := a.api.VerifyStep(ctx, args[0], args[1])
	a.track(err)
	if err != nil {
		return err
	}
	return a.printJSON(res)
}

func (a *App) Voucher(ctx context.Context, args []string) error {
	if err := want(args, 2, "voucher <courseId> <stepId>"); err != nil {
		return err
	}
	v, err := a.api.GetNFTVoucher(ctx, args[0], args[1])
	a.track(err)
	if err != nil {
		return err
	}
	return a.printJSON(v)
}

func (a *App) Mint(ctx context.Context, args []string) error {
	if err := want(args, 2, "mint <courseId> <stepId>"); err != nil {
		return err
	}
	tx, err := a.wallets.Mint(ctx, args[0], args[1], a.signer)
	a.track(err)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Minted, transaction %s verified\n", tx)
	return nil
}

type tokenInfo struct {
	State     auth.State `json:"state"`
	Subject   string     `json:"subject,omitempty"`
	Issuer    string     `json:"issuer,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Expired   bool       `json:"expired,omitempty"`
}

// Token shows the credential state and, for JWTs, the unverified claims.
// The credential itself is never printed.
func (a *App) Token(ctx context.Context, args []string) error {
	info := tokenInfo{State: a.tokens.State()}
	if info.State == auth.StateCached {
		tok, err := a.tokens.Token(ctx)
		if err != nil {
			return err
		}
		if c, ok := auth.InspectClaims(tok); ok {
			info.Subject, info.Issuer = c.Subject, c.Issuer
			if !c.ExpiresAt.IsZero() {
				exp := c.ExpiresAt.UTC()
				info.ExpiresAt = &exp
				info.Expired = c.Expired(time.Now())
			}
		}
	}
	return a.printJSON(info)
}

// Stats prints the HTTP counters collected so far.
func (a *App) Stats(ctx context.Context, args []string) error {
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	if len(lines) == 0 {
		fmt.Fprintln(a.out, "No requests yet")
		return nil
	}
	sort.Strings(lines)
	fmt.Fprintln(a.out, strings.Join(lines, "\n"))
	return nil
}
