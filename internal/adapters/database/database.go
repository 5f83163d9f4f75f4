// Package database implements the repository ports on top of gorm.
// Every repository holds the shared *gorm.DB pool and opens a request-scoped
// session with WithContext on each call.
package database

import (
	"errors"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"postboard/internal/core/comment"
	"postboard/internal/core/post"
	"postboard/internal/core/user"
)

// Models lists the tables owned by the application, in FK order.
var Models = []interface{}{
	&user.User{},
	&post.Post{},
	&comment.Comment{},
}

// Migrate creates or updates the users, posts and comments tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}

func newID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// notFound turns gorm's missing-row error into an absent result.
func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
