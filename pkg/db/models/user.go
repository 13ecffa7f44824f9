package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the storefront customer record. Account creation and
// authentication live outside this service; handlers only read users by
// the email supplied with a request.
type User struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username          string    `gorm:"column:username;not null" json:"username"`
	Email             string    `gorm:"column:email;not null;uniqueIndex:users_email_key" json:"email"`
	ProfilePictureURL *string   `gorm:"column:profile_picture_url" json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
