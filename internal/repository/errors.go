package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup by key matches no row.
	ErrNotFound = gorm.ErrRecordNotFound
	// ErrDuplicate is returned when a unique pair or key already exists.
	ErrDuplicate = errors.New("duplicate record")
)

// translate maps driver-level unique violations onto ErrDuplicate.
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
