package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssessmentStatus string

const (
	AssessmentSaved      AssessmentStatus = "SAVED"
	AssessmentInProgress AssessmentStatus = "IN_PROGRESS"
	AssessmentCompleted  AssessmentStatus = "COMPLETED"
	AssessmentAssessed   AssessmentStatus = "ASSESSED"
)

// CourseAssessment is unique per (user, course). A second assessment for the
// same pair overwrites status/rating/notes instead of creating a duplicate.
type CourseAssessment struct {
	ID        string           `gorm:"primaryKey;type:text" json:"id"`
	UserID    string           `gorm:"uniqueIndex:idx_assessment_user_course;not null" json:"userId"`
	CourseID  string           `gorm:"uniqueIndex:idx_assessment_user_course;not null" json:"courseId"`
	Status    AssessmentStatus `gorm:"type:text;not null" json:"status"`
	Rating    *int             `json:"rating"`
	Notes     string           `json:"notes"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`

	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

// VideoProgress is unique per (user, video). CourseID is denormalized for
// query convenience and set once at creation.
type VideoProgress struct {
	ID              string    `gorm:"primaryKey;type:text" json:"id"`
	UserID          string    `gorm:"uniqueIndex:idx_progress_user_video;not null" json:"userId"`
	VideoID         string    `gorm:"uniqueIndex:idx_progress_user_video;not null" json:"videoId"`
	CourseID        string    `gorm:"index;not null" json:"courseId"`
	ProgressPercent int       `gorm:"not null" json:"progressPercent"`
	WatchedAt       time.Time `gorm:"index" json:"watchedAt"`

	Video  Video  `gorm:"foreignKey:VideoID" json:"video,omitempty"`
	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (a *CourseAssessment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

func (p *VideoProgress) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
