package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// YoutubeChannel is keyed by the external channel identifier.
// The display title is refreshed on every import that references it,
// since channels rename over time.
type YoutubeChannel struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	ChannelID string    `gorm:"uniqueIndex;not null" json:"channelId"`
	Title     string    `json:"title"`
	Verified  bool      `gorm:"default:false" json:"verified"`
	CreatedAt time.Time `json:"-"`
}

type Course struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`

	TopicID string `gorm:"index;not null" json:"topicId"`
	Topic   Topic  `gorm:"foreignKey:TopicID" json:"topic"`

	ChannelID string         `gorm:"not null" json:"channelId"`
	Channel   YoutubeChannel `gorm:"foreignKey:ChannelID" json:"channel"`

	Videos []Video `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"videos,omitempty"`
}

type Video struct {
	ID              string    `gorm:"primaryKey;type:text" json:"id"`
	CourseID        string    `gorm:"index;not null" json:"courseId"`
	YoutubeVideoID  string    `gorm:"not null" json:"youtubeVideoId"`
	Title           string    `json:"title"`
	DurationSeconds int       `json:"durationSeconds"`
	Views           int64     `json:"views"`
	PublishedAt     time.Time `json:"publishedAt"`
	Position        int       `gorm:"default:0" json:"position"`
}

func (ch *YoutubeChannel) BeforeCreate(tx *gorm.DB) (err error) {
	if ch.ID == "" {
		ch.ID = uuid.New().String()
	}
	return
}

func (co *Course) BeforeCreate(tx *gorm.DB) (err error) {
	if co.ID == "" {
		co.ID = uuid.New().String()
	}
	return
}

func (v *Video) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return
}
