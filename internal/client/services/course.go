// Package services contains application services for the learnkit client.
// This file defines the course service: maps, memoized course details, step
// completion, and progress with a local fallback when the backend is down.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/learnkit/internal/client/apierr"
	"github.com/dmitrijs2005/learnkit/internal/client/client"
	"github.com/dmitrijs2005/learnkit/internal/client/models"
	"github.com/dmitrijs2005/learnkit/internal/client/repositories/progress"
	"github.com/dmitrijs2005/learnkit/internal/logging"
	"golang.org/x/sync/singleflight"
)

// CourseService defines course operations for the CLI.
//
// Contract:
//   - Course: fetched once per service instance and then served from memory.
//   - CompleteStep: the returned progress is also stored locally.
//   - Progress: refreshes local snapshots; if the backend fails with a
//     transient error, the local snapshots are returned flagged Offline.
//   - CourseProgress: nil when the course has not been started.
type CourseService interface {
	Maps(ctx context.Context) ([]models.Map, error)
	Course(ctx context.Context, courseID string) (*models.Course, error)
	Start(ctx context.Context, courseID string) error
	CompleteStep(ctx context.Context, courseID, stepID string, payload *models.StepPayload) (*models.CompleteStepResult, error)
	Progress(ctx context.Context) (ProgressView, error)
	CourseProgress(ctx context.Context, courseID string) (*models.Progress, error)
}

// ProgressView is the progress list plus where it came from.
type ProgressView struct {
	Items   []models.Progress `json:"items"`
	Offline bool              `json:"offline"`
	// AsOf is the oldest snapshot time when Offline is set.
	AsOf time.Time `json:"asOf,omitzero"`
}

type courseService struct {
	client client.Client
	repo   progress.Repository
	logger logging.Logger

	fetches singleflight.Group
	mu      sync.RWMutex
	courses map[string]*models.Course
}

// NewCourseService binds the service to an API client. repo may be nil, in
// which case nothing is stored locally and there is no offline fallback.
func NewCourseService(c client.Client, repo progress.Repository, logger logging.Logger) CourseService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &courseService{client: c, repo: repo, logger: logger, courses: make(map[string]*models.Course)}
}

func (s *courseService) Maps(ctx context.Context) ([]models.Map, error) {
	return s.client.GetMaps(ctx)
}

func (s *courseService) Course(ctx context.Context, courseID string) (*models.Course, error) {
	s.mu.RLock()
	c, ok := s.courses[courseID]
	s.mu.RUnlock()
	if ok {
		return c, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := s.fetches.DoChan(courseID, func() (any, error) {
		s.mu.RLock()
		c, ok := s.courses[courseID]
		s.mu.RUnlock()
		if ok {
			return c, nil
		}

		c, err := s.client.GetCourse(fetchCtx, courseID)
		if err != nil {
			return nil, err
		}
		if c != nil {
			s.mu.Lock()
			s.courses[courseID] = c
			s.mu.Unlock()
		}
		return c, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Course), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *courseService) Start(ctx context.Context, courseID string) error {
	if err := s.client.StartCourse(ctx, courseID); err != nil {
		return fmt.Errorf("start course: %w", err)
	}
	return nil
}

func (s *courseService) CompleteStep(ctx context.Context, courseID, stepID string, payload *models.StepPayload) (*models.CompleteStepResult, error) {
	res, err := s.client.CompleteStep(ctx, courseID, stepID, payload)
	if err != nil {
		return nil, fmt.Errorf("complete step: %w", err)
	}
	if res != nil && res.Progress != nil {
		s.remember(ctx, *res.Progress)
	}
	return res, nil
}

func (s *courseService) Progress(ctx context.Context) (ProgressView, error) {
	items, err := s.client.GetProgress(ctx)
	if err == nil {
		if s.repo != nil {
			if err := s.repo.ReplaceAll(ctx, items); err != nil {
				s.logger.Warn(ctx, "progress snapshot not stored", "error", err)
			}
		}
		return ProgressView{Items: items}, nil
	}

	if s.repo == nil || !apierr.IsRetryable(err) {
		return ProgressView{}, fmt.Errorf("get progress: %w", err)
	}

	snapshots, lerr := s.repo.List(ctx)
	if lerr != nil {
		s.logger.Error(ctx, "local progress unavailable", "error", lerr)
		return ProgressView{}, fmt.Errorf("get progress: %w", err)
	}

	s.logger.Warn(ctx, "backend unavailable, serving local progress", "error", err, "snapshots", len(snapshots))

	view := ProgressView{Items: make([]models.Progress, 0, len(snapshots)), Offline: true}
	for _, sn := range snapshots {
		view.Items = append(view.Items, sn.Progress)
		if view.AsOf.IsZero() || sn.UpdatedAt.Before(view.AsOf) {
			view.AsOf = sn.UpdatedAt
		}
	}
	return view, nil
}

func (s *courseService) CourseProgress(ctx context.Context, courseID string) (*models.Progress, error) {
	p, err := s.client.GetCourseProgress(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("get course progress: %w", err)
	}
	if p != nil {
		s.remember(ctx, *p)
	}
	return p, nil
}

func (s *courseService) remember(ctx context.Context, p models.Progress) {
	if s.repo == nil || p.CourseID == "" {
		return
	}
	if err := s.repo.Save(ctx, p); err != nil {
		s.logger.Warn(ctx, "progress snapshot not stored", "course_id", p.CourseID, "error", err)
	}
}
