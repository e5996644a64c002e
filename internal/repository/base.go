// Package repository implements the data access layer for the application.
package repository

import (
	"errors"

	"blogly/internal/database"
	"blogly/internal/models"

	"gorm.io/gorm"
)

// readDB routes reads to the replica when one is connected.
func readDB(primary *gorm.DB) *gorm.DB {
	if database.ReadDB != nil {
		return database.ReadDB
	}
	return primary
}

// translate maps gorm errors onto AppErrors for resource/id.
func translate(err error, resource string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return models.NewInternalError(err)
}
