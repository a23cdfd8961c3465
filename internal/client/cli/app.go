package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/learnkit/internal/client/apierr"
	"github.com/dmitrijs2005/learnkit/internal/client/auth"
	"github.com/dmitrijs2005/learnkit/internal/client/client"
	"github.com/dmitrijs2005/learnkit/internal/client/config"
	"github.com/dmitrijs2005/learnkit/internal/client/repositories/progress"
	"github.com/dmitrijs2005/learnkit/internal/client/services"
	"github.com/dmitrijs2005/learnkit/internal/client/storage"
	"github.com/dmitrijs2005/learnkit/internal/client/transport"
	"github.com/dmitrijs2005/learnkit/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// tokenSource is the part of auth.TokenSource the CLI shows to the user.
type tokenSource interface {
	State() auth.State
	Token(ctx context.Context) (string, error)
}

var _ execIface = (*App)(nil)

type App struct {
	api      client.Client
	tokens   tokenSource
	courses  services.CourseService
	wallets  services.WalletService
	signer   services.Signer
	registry prometheus.Gatherer
	db       *sql.DB
	logger   logging.Logger

	Mode   Mode
	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the API client, the local cache and the services from cfg.
// Commands read from in and print to out.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	reader := bufio.NewReader(in)

	registry := prometheus.NewRegistry()
	metrics, err := transport.NewMetrics(registry)
	if err != nil {
		return nil, err
	}

	opts := cfg.TransportOptions()
	api, err := client.New(client.Config{
		BaseURL:       cfg.BaseURL,
		APIKey:        cfg.APIKey,
		TokenProvider: tokenProvider(cfg, os.Stderr),
		Transport:     &opts,
		Logger:        logger,
		Metrics:       metrics,
		Tracing:       cfg.Tracing,
	})
	if err != nil {
		return nil, err
	}

	var (
		db   *sql.DB
		repo progress.Repository
	)
	if cfg.CachePath != "" {
		db, err = storage.Open(ctx, cfg.CachePath)
		if err != nil {
			logger.Error(ctx, "error initializing database", "path", cfg.CachePath, "error", err)
			return nil, err
		}
		repo = progress.NewSQLiteRepository(db)
	}

	return &App{
		api:      api,
		tokens:   api.Tokens(),
		courses:  services.NewCourseService(api, repo, logger),
		wallets:  services.NewWalletService(api, logger),
		signer:   &promptSigner{reader: reader, w: out},
		registry: registry,
		db:       db,
		logger:   logger,
		reader:   reader,
		out:      out,
	}, nil
}

// tokenProvider picks the credential source: a token file, a fixed token,
// or an interactive prompt.
func tokenProvider(cfg *config.Config, w io.Writer) auth.Provider {
	switch {
	case cfg.TokenFile != "":
		return auth.FileProvider(cfg.TokenFile)
	case cfg.Token != "":
		return auth.StaticProvider(cfg.Token)
	default:
		return promptProvider(w)
	}
}

// Run executes args as a single command, or starts the REPL when args is
// empty.
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.Close()

	if len(args) > 0 {
		return dispatch(ctx, a, args)
	}

	fmt.Fprintln(a.out, "learnkit CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.logger.Info(context.Background(), "switched mode", "mode", string(mode))
	}
}

// track updates the mode from the outcome of a backend call.
func (a *App) track(err error) {
	switch {
	case err == nil:
		a.setMode(ModeOnline)
	case apierr.IsRetryable(err):
		a.setMode(ModeOffline)
	}
}

func (a *App) getStatus() string {
	var parts []string
	if a.tokens != nil {
		parts = append(parts, "token "+string(a.tokens.State()))
	}
	if a.Mode != "" {
		parts = append(parts, string(a.Mode))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
