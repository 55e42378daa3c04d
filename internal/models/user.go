// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user account and its public profile.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"unique;not null" json:"username"`
	Email          string         `gorm:"unique;not null" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	ProfilePicture string         `json:"profile_picture"`
	Bio            string         `json:"bio"`
	Website        string         `json:"website"`
	Location       string         `json:"location"`
	// PostsCount is not persisted; computed at query time
	PostsCount int `gorm:"->" json:"posts_count"`
	// FollowersCount is not persisted; computed at query time
	FollowersCount int `gorm:"->" json:"followers_count"`
	// FollowingCount is not persisted; computed at query time
	FollowingCount int            `gorm:"->" json:"following_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Posts          []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
