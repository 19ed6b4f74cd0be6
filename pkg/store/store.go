// Package store persists studies and their analysis results for the
// HTTP API. Records are immutable snapshots: re-analyzing a study
// replaces the stored result wholesale.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/clhatlas/reco4011-ssim/pkg/errors"
	"github.com/clhatlas/reco4011-ssim/pkg/ism"
	"github.com/clhatlas/reco4011-ssim/pkg/study"
)

// Record is one stored study with its analysis result.
type Record struct {
	ID        uuid.UUID    `json:"id" bson:"_id"`
	Name      string       `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	Study     *study.Study `json:"study" bson:"study"`
	Result    *ism.Result  `json:"result,omitempty" bson:"result,omitempty"`
}

// NewRecord creates a record for the study with a fresh id and the
// current time.
func NewRecord(s *study.Study, res *ism.Result) *Record {
	return &Record{
		ID:        uuid.New(),
		Name:      s.Name,
		CreatedAt: time.Now().UTC(),
		Study:     s,
		Result:    res,
	}
}

// Store is the persistence interface for study records.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put inserts or replaces a record by id.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a record by id. A missing record is a
	// STUDY_NOT_FOUND error.
	Get(ctx context.Context, id uuid.UUID) (*Record, error)

	// List returns all records ordered by creation time, newest first.
	List(ctx context.Context) ([]*Record, error)

	// Delete removes a record by id. A missing record is a
	// STUDY_NOT_FOUND error.
	Delete(ctx context.Context, id uuid.UUID) error

	// Close releases any resources held by the store.
	Close(ctx context.Context) error
}

func notFound(id uuid.UUID) error {
	return apperrors.New(apperrors.ErrCodeStudyNotFound, "study %s not found", id)
}
