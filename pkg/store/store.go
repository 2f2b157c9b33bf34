// Package store archives layout plans so they can be rendered again later.
//
// Plans are saved whole and addressed by a random UUID. Loading a plan
// rebuilds its coordinate mappers, so a stored plan renders exactly like a
// freshly composed one.
//
// Backends:
//   - [FileStore] keeps one JSON file per plan (CLI and single-node servers)
//   - [MongoStore] keeps plans in a MongoDB collection
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/layout"
)

// Store saves and loads plans.
type Store interface {
	// Save stores plan under a new id and returns it.
	Save(ctx context.Context, plan *layout.Plan) (string, error)
	// Get loads a plan. Unknown ids fail with NOT_FOUND.
	Get(ctx context.Context, id string) (*layout.Plan, error)
	Close() error
}

// Record is the stored form of a plan.
type Record struct {
	ID        string       `json:"id" bson:"_id"`
	CreatedAt time.Time    `json:"created_at" bson:"created_at"`
	Plan      *layout.Plan `json:"plan" bson:"plan"`
}

func newRecord(plan *layout.Plan) (Record, error) {
	if plan == nil {
		return Record{}, errors.New(errors.ErrCodeInvalidInput, "cannot store an empty plan")
	}
	return Record{ID: uuid.NewString(), CreatedAt: time.Now().UTC(), Plan: plan}, nil
}

// load finishes a decoded record.
func (r Record) load() (*layout.Plan, error) {
	if r.Plan == nil {
		return nil, errors.New(errors.ErrCodeInternal, "stored plan %s is empty", r.ID)
	}
	if err := r.Plan.Rebuild(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "rebuild plan %s", r.ID)
	}
	return r.Plan, nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "plan %s not found", id)
}
