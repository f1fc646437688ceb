package model

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/shared/utils"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type Post struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Slug        string     `json:"slug" db:"slug"`
	Excerpt     *string    `json:"excerpt,omitempty" db:"excerpt"`
	Content     string     `json:"content" db:"content"`
	Author      *string    `json:"author,omitempty" db:"author"`
	Tags        string     `json:"tags" db:"tags"`
	Published   bool       `json:"published" db:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" db:"published_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

var Table = record.Table{
	Name:    "blog_posts",
	OrderBy: []record.Order{{Column: "created_at", Desc: true}},
	Unique:  []string{"slug"},
}

// PublicFilter hides drafts from the public site.
var PublicFilter = record.Eq("published", true)

func (p *Post) GetID() string   { return p.ID }
func (p *Post) SetID(id string) { p.ID = id }

// Normalize derives the slug from the title unless one was given, and
// canonicalises tags.
func (p *Post) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	if strings.TrimSpace(p.Slug) == "" {
		p.Slug = utils.GenerateSlug(p.Title)
	} else {
		p.Slug = utils.GenerateSlug(p.Slug)
	}
	p.Tags = utils.NormalizeTags(p.Tags)
}

func (p *Post) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&p.Slug, validation.Required, validation.Match(slugPattern)),
		validation.Field(&p.Content, validation.Required),
	)
}

func (p *Post) BeforeCreate(now time.Time) {
	p.CreatedAt = now
	p.UpdatedAt = now
	p.syncPublished(now)
}

func (p *Post) BeforeUpdate(now time.Time) {
	p.UpdatedAt = now
	p.syncPublished(now)
}

// syncPublished stamps the first publication time and clears it on unpublish.
func (p *Post) syncPublished(now time.Time) {
	switch {
	case p.Published && p.PublishedAt == nil:
		p.PublishedAt = &now
	case !p.Published:
		p.PublishedAt = nil
	}
}

// TagList returns the post's tags as a slice.
func (p *Post) TagList() []string {
	return utils.SplitTags(p.Tags)
}
