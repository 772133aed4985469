package repository

import (
	"fmt"
	"strings"
	"time"

	"blog/internal/models"
)

// PostQuery describes a read over posts. The zero value selects every post
// in the default order (publish DESC). Methods return modified copies, so a
// query can be narrowed further without affecting the one it came from.
type PostQuery struct {
	status   models.Status
	noMatch  bool
	tag      string
	authorID int64
	day      time.Time
	slug     string
	limit    int
	offset   int
}

// Objects is the unrestricted accessor.
func Objects() PostQuery { return PostQuery{} }

// Published is Objects narrowed to published posts.
func Published() PostQuery { return Objects().WithStatus(models.StatusPublished) }

// WithStatus narrows to status s. It never widens: an empty s changes
// nothing, and asking an already narrowed query for another status makes it
// match no rows.
func (q PostQuery) WithStatus(s models.Status) PostQuery {
	switch {
	case s == "" || s == q.status:
	case q.status == "":
		q.status = s
	default:
		q.noMatch = true
	}
	return q
}

// Tagged keeps posts carrying the tag with the given slug.
func (q PostQuery) Tagged(tagSlug string) PostQuery {
	q.tag = tagSlug
	return q
}

func (q PostQuery) ByAuthor(id int64) PostQuery {
	q.authorID = id
	return q
}

// On keeps posts whose publish falls on the given UTC calendar day.
func (q PostQuery) On(year, month, day int) PostQuery {
	q.day = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return q
}

func (q PostQuery) WithSlug(slug string) PostQuery {
	q.slug = slug
	return q
}

// Page limits the result; a non-positive limit means no limit.
func (q PostQuery) Page(limit, offset int) PostQuery {
	q.limit = limit
	q.offset = offset
	return q
}

const postColumns = `
	p.id, p.title, p.slug, p.author_id, p.body, p.publish, p.created, p.updated, p.status,
	ARRAY(
		SELECT t.name FROM tagged_posts tp JOIN tags t ON t.id = tp.tag_id
		WHERE tp.post_id = p.id ORDER BY t.name
	) AS tags`

func (q PostQuery) build() (string, []any) {
	where := []string{}
	args := []any{}
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.status != "" {
		where = append(where, "p.status = "+next(string(q.status)))
	}
	if q.noMatch {
		where = append(where, "FALSE")
	}
	if q.tag != "" {
		where = append(where, `EXISTS (
			SELECT 1 FROM tagged_posts tp JOIN tags t ON t.id = tp.tag_id
			WHERE tp.post_id = p.id AND t.slug = `+next(q.tag)+`
		)`)
	}
	if q.authorID != 0 {
		where = append(where, "p.author_id = "+next(q.authorID))
	}
	if !q.day.IsZero() {
		where = append(where, "p.publish_date = "+next(q.day))
	}
	if q.slug != "" {
		where = append(where, "p.slug = "+next(q.slug))
	}

	sql := "SELECT" + postColumns + "\nFROM posts p"
	if len(where) > 0 {
		sql += "\nWHERE " + strings.Join(where, " AND ")
	}
	sql += "\nORDER BY p.publish DESC, p.id DESC"
	if q.limit > 0 {
		sql += " LIMIT " + next(q.limit)
	}
	if q.offset > 0 {
		sql += " OFFSET " + next(q.offset)
	}
	return sql, args
}
