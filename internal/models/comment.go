package models

import (
	"errors"
	"fmt"
	"time"
)

// Comment is an anonymous reply attached to exactly one Post. Active is
// stored as set; NewComment returns a visible comment.
type Comment struct {
	ID      int64     `db:"id"      json:"id"`
	PostID  int64     `db:"post_id" json:"postId" validate:"required,gt=0"`
	Name    string    `db:"name"    json:"name"   validate:"required,max=80"`
	Email   string    `db:"email"   json:"email"  validate:"required,email,max=254"`
	Body    string    `db:"body"    json:"body"   validate:"required"`
	Created time.Time `db:"created" json:"created"`
	Updated time.Time `db:"updated" json:"updated"`
	Active  bool      `db:"active"  json:"active"`
	Post    *Post     `db:"-"       json:"-"       validate:"-"`
}

// NewComment returns an active comment for post.
func NewComment(post *Post, name, email, body string) (*Comment, error) {
	c := &Comment{Name: name, Email: email, Body: body, Active: true}
	if err := c.SetPost(post); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the fields a caller controls before the comment is written.
func (c *Comment) Validate() error {
	return validate.Struct(c)
}

// SetPost sets the parent post and updates the PostID.
func (c *Comment) SetPost(post *Post) error {
	if post == nil {
		return errors.New("post cannot be nil")
	}

	c.Post = post
	c.PostID = post.ID
	return nil
}

func (c *Comment) String() string {
	if c.Post != nil {
		return fmt.Sprintf("Comment by %s on %s", c.Name, c.Post)
	}
	return fmt.Sprintf("Comment by %s on post %d", c.Name, c.PostID)
}
