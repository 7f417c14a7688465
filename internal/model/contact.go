package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact statuses. Transitions are unordered: any status may follow any
// other, only enum membership is enforced.
const (
	ContactStatusNew        = "new"
	ContactStatusContacted  = "contacted"
	ContactStatusInProgress = "in-progress"
	ContactStatusCompleted  = "completed"
	ContactStatusArchived   = "archived"
)

// ContactStatuses lists every valid contact status.
var ContactStatuses = []string{
	ContactStatusNew,
	ContactStatusContacted,
	ContactStatusInProgress,
	ContactStatusCompleted,
	ContactStatusArchived,
}

// ValidContactStatus reports whether s is a known contact status.
func ValidContactStatus(s string) bool {
	for _, v := range ContactStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Contact is a lead captured by the public contact form. Immutable after
// creation except for Status and LastUpdated.
type Contact struct {
	ID            uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	FirstName     string    `json:"firstName" gorm:"size:100;not null"`
	LastName      string    `json:"lastName" gorm:"size:100;not null"`
	Email         string    `json:"email" gorm:"size:255;not null;index"`
	Company       string    `json:"company,omitempty" gorm:"size:255"`
	Message       string    `json:"message" gorm:"type:text;not null"`
	Status        string    `json:"status" gorm:"size:20;default:'new';index"`
	DateSubmitted time.Time `json:"dateSubmitted" gorm:"autoCreateTime"`
	LastUpdated   time.Time `json:"lastUpdated" gorm:"autoUpdateTime"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
