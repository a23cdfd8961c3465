package progress

import (
	"context"
	"time"

	"github.com/dmitrijs2005/learnkit/internal/client/models"
)

// Snapshot is the last progress record seen for a course.
type Snapshot struct {
	Progress  models.Progress
	UpdatedAt time.Time
}

type Repository interface {
	Save(ctx context.Context, p models.Progress) error
	// ReplaceAll swaps the whole table for ps in one transaction.
	ReplaceAll(ctx context.Context, ps []models.Progress) error
	// Get returns nil, nil when no snapshot exists.
	Get(ctx context.Context, courseID string) (*Snapshot, error)
	List(ctx context.Context) ([]Snapshot, error)
	Clear(ctx context.Context) error
}
