package service

import (
	"errors"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// wrapNotFound maps gorm's record-not-found onto the API error model and
// leaves already-classified errors alone.
func wrapNotFound(err error, resource string, id uint) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return models.NewInternalError(err)
}
