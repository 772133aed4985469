package models

import (
	"errors"
	"strconv"
)

// PostDetailRoute is the route name canonical post URLs resolve against.
const PostDetailRoute = "blog:post_detail"

// ErrNotRoutable is returned for a post that lacks a publish time or slug.
var ErrNotRoutable = errors.New("post has no publish date or slug")

// URLResolver turns a named route and its positional arguments into a path.
type URLResolver interface {
	Reverse(name string, args ...string) (string, error)
}

// URLParts extracts the canonical route arguments: year, month, day and slug.
// The date is taken in UTC, the same calendar the slug uniqueness uses.
func (p *Post) URLParts() (year, month, day int, slug string, err error) {
	if p == nil || p.Publish.IsZero() || p.Slug == "" {
		return 0, 0, 0, "", ErrNotRoutable
	}
	y, m, d := p.Publish.UTC().Date()
	return y, int(m), d, p.Slug, nil
}

// AbsoluteURL returns the canonical path of the post.
func (p *Post) AbsoluteURL(r URLResolver) (string, error) {
	year, month, day, slug, err := p.URLParts()
	if err != nil {
		return "", err
	}
	return r.Reverse(PostDetailRoute,
		strconv.Itoa(year),
		strconv.Itoa(month),
		strconv.Itoa(day),
		slug,
	)
}
