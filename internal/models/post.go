package models

import (
	"errors"
	"time"
)

// Post is a single blog entry. Created and Updated are owned by the database.
type Post struct {
	ID       int64     `db:"id"        json:"id"`
	Title    string    `db:"title"     json:"title"   validate:"required,max=250"`
	Slug     string    `db:"slug"      json:"slug"    validate:"required,max=250,slug"`
	AuthorID int64     `db:"author_id" json:"authorId" validate:"required,gt=0"`
	Body     string    `db:"body"      json:"body"    validate:"required"`
	Publish  time.Time `db:"publish"   json:"publish"`
	Created  time.Time `db:"created"   json:"created"`
	Updated  time.Time `db:"updated"   json:"updated"`
	Status   Status    `db:"status"    json:"status"  validate:"post_status"`
	Tags     []string  `db:"-"         json:"tags"`
}

// Validate checks the fields a caller controls before the post is written.
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	if p.Publish.IsZero() {
		return errors.New("publish cannot be zero")
	}
	return nil
}

// BeforeCreate fills the defaults applied to a new post.
func (p *Post) BeforeCreate(now time.Time) {
	if p.Publish.IsZero() {
		p.Publish = now
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
}

func (p *Post) IsPublished() bool { return p.Status == StatusPublished }

func (p *Post) String() string { return p.Title }
