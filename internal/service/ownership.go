package service

import (
	"context"
	"fmt"

	"github.com/placement-portal/experience-service/internal/domain"
	apperrors "github.com/placement-portal/experience-service/pkg/util/errorutil"
)

// OwnedAccessor exposes the two capabilities the ownership gate needs from an
// entity kind: loading a record and naming its owner.
type OwnedAccessor[T any] interface {
	Resource() string
	LoadByID(ctx context.Context, id string) (*T, error)
	OwnerOf(record *T) string
}

// DeleteResult acknowledges a deletion.
type DeleteResult struct {
	DeletedID string
}

// MutateOwned loads the record addressed by id and applies mutate only when
// actorID owns it. A missing record yields NotFound, a foreign one Forbidden.
// If the record disappears between the check and the mutation the repository
// reports ErrNotFound, which also surfaces as NotFound.
func MutateOwned[T, R any](ctx context.Context, acc OwnedAccessor[T], actorID, id string, mutate func(context.Context, *T) (R, error)) (R, error) {
	var zero R

	record, err := acc.LoadByID(ctx, id)
	if err != nil {
		return zero, storeError(err, acc.Resource())
	}
	if !domain.SameIdentity(acc.OwnerOf(record), actorID) {
		return zero, apperrors.NewForbidden(fmt.Sprintf("not authorized to modify this %s", acc.Resource()))
	}

	result, err := mutate(ctx, record)
	if err != nil {
		return zero, storeError(err, acc.Resource())
	}
	return result, nil
}
