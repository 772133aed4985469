package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"blog/internal/models"
)

type PostRepo interface {
	Create(ctx context.Context, p *models.Post) error
	CreateWithTags(ctx context.Context, p *models.Post, tags []models.Tag) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Get(ctx context.Context, q PostQuery) (*models.Post, error)
	Find(ctx context.Context, q PostQuery) ([]*models.Post, error)
	Update(ctx context.Context, p *models.Post) error
	SetStatus(ctx context.Context, id int64, status models.Status) error
	Delete(ctx context.Context, id int64) error
}

type postRepo struct{ db DBTX }

func NewPostRepo(db DBTX) PostRepo { return &postRepo{db: db} }

// Create inserts p and copies back the identifiers, defaults and timestamps
// the database assigned. Created and Updated on p are ignored; a zero
// Publish or empty Status takes the column default.
func (r *postRepo) Create(ctx context.Context, p *models.Post) error {
	const q = `
		INSERT INTO posts (title, slug, author_id, body, publish, status)
		VALUES ($1, $2, $3, $4, COALESCE($5::timestamptz, now()), COALESCE(NULLIF($6, ''), 'DF'))
		RETURNING id, publish, created, updated, status
	`
	var publish *time.Time
	if !p.Publish.IsZero() {
		publish = &p.Publish
	}

	var status string
	err := r.db.QueryRow(ctx, q,
		p.Title, p.Slug, p.AuthorID, p.Body, publish, string(p.Status),
	).Scan(&p.ID, &p.Publish, &p.Created, &p.Updated, &status)
	if err != nil {
		return err
	}
	return p.Status.Scan(status)
}

// CreateWithTags inserts p and links its tags in one transaction. On error
// nothing is stored and p.ID is left zero.
func (r *postRepo) CreateWithTags(ctx context.Context, p *models.Post, tags []models.Tag) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := (&postRepo{db: tx}).Create(ctx, p); err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		return NewTagRepo(tx).Set(ctx, p.ID, tags)
	})
	if err != nil {
		p.ID = 0
	}
	return err
}

func (r *postRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	q := "SELECT" + postColumns + "\nFROM posts p WHERE p.id = $1"
	p, err := scanPost(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

// Get returns the first post matching q, or ErrNotFound.
func (r *postRepo) Get(ctx context.Context, q PostQuery) (*models.Post, error) {
	sql, args := q.Page(1, q.offset).build()
	p, err := scanPost(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *postRepo) Find(ctx context.Context, q PostQuery) ([]*models.Post, error) {
	sql, args := q.build()

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// Update writes the caller-editable fields and refreshes Updated from the row.
func (r *postRepo) Update(ctx context.Context, p *models.Post) error {
	const q = `
		UPDATE posts
		SET title = $1,
		    slug = $2,
		    author_id = $3,
		    body = $4,
		    publish = $5,
		    status = $6
		WHERE id = $7
		RETURNING created, updated
	`
	err := r.db.QueryRow(ctx, q,
		p.Title, p.Slug, p.AuthorID, p.Body, p.Publish, string(p.Status), p.ID,
	).Scan(&p.Created, &p.Updated)
	return notFound(err)
}

func (r *postRepo) SetStatus(ctx context.Context, id int64, status models.Status) error {
	return expectOne(r.db.Exec(ctx, `UPDATE posts SET status = $2 WHERE id = $1`, id, string(status)))
}

// Delete removes the post; comments and tag links go with it.
func (r *postRepo) Delete(ctx context.Context, id int64) error {
	return expectOne(r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id))
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	var status string
	if err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.AuthorID, &p.Body,
		&p.Publish, &p.Created, &p.Updated, &status, &p.Tags,
	); err != nil {
		return nil, err
	}
	if err := p.Status.Scan(status); err != nil {
		return nil, err
	}
	return &p, nil
}
