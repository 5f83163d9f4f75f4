package comment

import (
	"time"

	"postboard/internal/core/post"
	"postboard/internal/core/user"
)

type Comment struct {
	ID        string     `gorm:"primaryKey;type:char(36)" json:"id"`
	UserID    string     `gorm:"type:char(36);not null;index" json:"user_id"`
	User      *user.User `gorm:"foreignKey:UserID" json:"-"`
	PostID    string     `gorm:"type:char(36);not null;index" json:"post_id"`
	Post      *post.Post `gorm:"foreignKey:PostID" json:"-"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
