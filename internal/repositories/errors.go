package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrConflict is returned when an insert hits a uniqueness constraint.
var ErrConflict = errors.New("row already exists")

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// insertResult maps the outcome of an ON CONFLICT DO NOTHING insert.
func insertResult(res *gorm.DB) error {
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}
