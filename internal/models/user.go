package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"type:text;default:'USER'" json:"role"`

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

// Profile holds the user-editable presentation fields. Created together
// with the user at registration, or lazily on first profile update.
type Profile struct {
	ID        string         `gorm:"primaryKey;type:text" json:"-"`
	UserID    string         `gorm:"uniqueIndex;not null" json:"-"`
	Name      string         `json:"name"`
	AvatarURL string         `json:"avatarUrl"`
	Bio       string         `json:"bio"`
	Interests pq.StringArray `gorm:"type:text[]" json:"interests"`
	UpdatedAt time.Time      `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
