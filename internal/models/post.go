package models

import (
	"time"
)

// Post carries a snapshot of the author's name and avatar taken at creation
// time. Later edits to the user never update these copies.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `gorm:"constraint:OnDelete:CASCADE;" json:"likes"`
	Comments  []Comment `gorm:"constraint:OnDelete:CASCADE;" json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

// Like rows are unique per (post, user); the index makes a duplicate like a
// constraint violation instead of a read-modify-write race.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_post_user" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment, like Post, snapshots the author's name and avatar.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}
