package post

import (
	"time"

	"postboard/internal/core/user"
)

type Post struct {
	ID        string     `gorm:"primaryKey;type:char(36)" json:"id"`
	UserID    string     `gorm:"type:char(36);not null;index" json:"user_id"`
	User      *user.User `gorm:"foreignKey:UserID" json:"-"` // FK only, never preloaded
	Title     string     `gorm:"size:100;not null" json:"title"`
	Content   string     `gorm:"size:1000;not null" json:"content"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
