package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project categories. A project belongs to at least one.
const (
	CategoryAI     = "AI"
	CategoryMobile = "Mobile"
	CategoryWeb    = "Web"
	CategoryUIUX   = "UI/UX"
)

// ProjectCategories lists every valid project category.
var ProjectCategories = []string{CategoryAI, CategoryMobile, CategoryWeb, CategoryUIUX}

// ValidCategory reports whether c is a known project category.
func ValidCategory(c string) bool {
	for _, v := range ProjectCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Testimonial is an optional client quote attached to a project, persisted
// as a JSON column.
type Testimonial struct {
	Quote    string `json:"quote"`
	Author   string `json:"author"`
	Position string `json:"position,omitempty"`
	Company  string `json:"company,omitempty"`
}

// Project is a portfolio entry shown on the public site.
type Project struct {
	ID               uuid.UUID    `json:"id" gorm:"type:char(36);primaryKey"`
	Title            string       `json:"title" gorm:"size:100;not null"`
	Slug             string       `json:"slug" gorm:"uniqueIndex;size:120;not null"`
	Client           string       `json:"client" gorm:"size:255;not null"`
	Description      string       `json:"description" gorm:"type:text;not null"`
	ShortDescription string       `json:"shortDescription" gorm:"size:200;not null"`
	Categories       []string     `json:"categories" gorm:"serializer:json"`
	Technologies     []string     `json:"technologies" gorm:"serializer:json"`
	Features         []string     `json:"features,omitempty" gorm:"serializer:json"`
	ThumbnailImage   string       `json:"thumbnailImage" gorm:"size:255;not null"`
	GalleryImages    []string     `json:"galleryImages,omitempty" gorm:"serializer:json"`
	ProjectURL       string       `json:"projectUrl,omitempty" gorm:"size:255"`
	Testimonial      *Testimonial `json:"testimonial,omitempty" gorm:"serializer:json"`
	Featured         bool         `json:"featured" gorm:"default:false;index"`
	CompletionDate   *time.Time   `json:"completionDate,omitempty"`
	CreatedBy        uuid.UUID    `json:"createdBy" gorm:"type:char(36);not null;index"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// OwnedBy reports whether the user may mutate this project: its creator or
// any admin.
func (p *Project) OwnedBy(u *User) bool {
	return u.IsAdmin() || p.CreatedBy == u.ID
}

var (
	slugStrip    = regexp.MustCompile(`[^\w\s]`)
	slugCollapse = regexp.MustCompile(`\s+`)
)

// Slugify derives a URL-safe slug from a project title: lowercase, strip
// characters that are neither word nor space, collapse runs of whitespace
// into single hyphens. Deterministic, so re-applying the same title always
// yields the same slug.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	return slugCollapse.ReplaceAllString(s, "-")
}
