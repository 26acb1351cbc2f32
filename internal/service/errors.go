package service

import (
	"errors"

	"github.com/placement-portal/experience-service/internal/repository"
	apperrors "github.com/placement-portal/experience-service/pkg/util/errorutil"
)

// storeError classifies a repository failure. Domain errors pass through,
// missing records become NotFound and anything else is a store outage.
func storeError(err error, resource string) error {
	if err == nil {
		return nil
	}
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(resource, nil)
	}
	return apperrors.NewStoreUnavailable(err)
}
