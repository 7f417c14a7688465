package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "simple title",
			title: "Retail Dashboard",
			want:  "retail-dashboard",
		},
		{
			name:  "punctuation stripped",
			title: "AI & Ops: v2!",
			want:  "ai-ops-v2",
		},
		{
			name:  "multiple spaces collapse",
			title: "Mobile   Banking    App",
			want:  "mobile-banking-app",
		},
		{
			name:  "leading and trailing whitespace",
			title: "  Brand Refresh  ",
			want:  "brand-refresh",
		},
		{
			name:  "already lowercase",
			title: "portfolio",
			want:  "portfolio",
		},
		{
			name:  "non-ascii stripped",
			title: "Café — Ordering",
			want:  "caf-ordering",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	title := "E-Commerce Replatform (Phase 2)"
	first := Slugify(title)
	assert.Equal(t, first, Slugify(title))
}

func TestValidCategory(t *testing.T) {
	for _, c := range ProjectCategories {
		assert.True(t, ValidCategory(c))
	}
	assert.False(t, ValidCategory("Gaming"))
	assert.False(t, ValidCategory("web")) // case sensitive
}

func TestValidContactStatus(t *testing.T) {
	for _, s := range ContactStatuses {
		assert.True(t, ValidContactStatus(s))
	}
	assert.False(t, ValidContactStatus("open"))
}

func TestProjectOwnedBy(t *testing.T) {
	owner := &User{ID: uuid.New(), Role: RoleEditor}
	admin := &User{ID: uuid.New(), Role: RoleAdmin}
	other := &User{ID: uuid.New(), Role: RoleEditor}

	p := &Project{CreatedBy: owner.ID}

	assert.True(t, p.OwnedBy(owner))
	assert.True(t, p.OwnedBy(admin))
	assert.False(t, p.OwnedBy(other))
}
