package repository

import (
	"errors"

	"gorm.io/gorm"
)

// mapGormError converts GORM errors to domain errors, keeping database
// concerns inside the infrastructure layer. notFound and duplicate are the
// domain errors to use for the corresponding GORM sentinels, which differ per
// entity.
func mapGormError(err, notFound, duplicate error) error {
	if err == nil {
		return nil
	}
	current := err
	for current != nil {
		switch {
		case errors.Is(current, gorm.ErrRecordNotFound):
			return notFound
		case errors.Is(current, gorm.ErrDuplicatedKey):
			return duplicate
		}
		current = errors.Unwrap(current)
	}
	return err
}
