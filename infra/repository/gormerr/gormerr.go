// Package gormerr translates GORM errors into domain errors.
package gormerr

import (
	"errors"

	"github.com/amirasaad/fintrack/pkg/domain"
	"gorm.io/gorm"
)

// ToDomain maps missing records to domain.ErrNotFound and unique violations
// to domain.ErrAlreadyExists. Other errors pass through.
func ToDomain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrAlreadyExists
	}
	return err
}

// Mapping narrows the generic domain errors to a resource's own sentinels.
// A nil field keeps the generic error.
type Mapping struct {
	NotFound error
	Conflict error
}

// Map converts err with ToDomain and then applies the resource sentinels.
func (m Mapping) Map(err error) error {
	mapped := ToDomain(err)
	switch {
	case mapped == domain.ErrNotFound && m.NotFound != nil:
		return m.NotFound
	case mapped == domain.ErrAlreadyExists && m.Conflict != nil:
		return m.Conflict
	}
	return mapped
}
