package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"blog/internal/models"
)

type CommentRepo interface {
	Create(ctx context.Context, c *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64, activeOnly bool) ([]*models.Comment, error)
	All(ctx context.Context) ([]*models.Comment, error)
	Update(ctx context.Context, c *models.Comment) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type commentRepo struct{ db DBTX }

func NewCommentRepo(db DBTX) CommentRepo { return &commentRepo{db: db} }

const commentColumns = `id, post_id, name, email, body, created, updated, active`

// Create stores c with Active exactly as given. A zero Comment is therefore
// stored hidden; models.NewComment builds visible ones.
func (r *commentRepo) Create(ctx context.Context, c *models.Comment) error {
	const q = `
		INSERT INTO comments (post_id, name, email, body, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created, updated
	`
	return r.db.QueryRow(ctx, q, c.PostID, c.Name, c.Email, c.Body, c.Active).
		Scan(&c.ID, &c.Created, &c.Updated)
}

func (r *commentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	c, err := scanComment(r.db.QueryRow(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// ListByPost returns the comments of a post, oldest first.
func (r *commentRepo) ListByPost(ctx context.Context, postID int64, activeOnly bool) ([]*models.Comment, error) {
	q := `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1`
	if activeOnly {
		q += ` AND active`
	}
	q += ` ORDER BY created ASC, id ASC`
	return r.list(ctx, q, postID)
}

func (r *commentRepo) All(ctx context.Context) ([]*models.Comment, error) {
	return r.list(ctx, `SELECT `+commentColumns+` FROM comments ORDER BY created ASC, id ASC`)
}

// Update writes name, email, body and active. The owning post never changes.
func (r *commentRepo) Update(ctx context.Context, c *models.Comment) error {
	const q = `
		UPDATE comments
		SET name = $1, email = $2, body = $3, active = $4
		WHERE id = $5
		RETURNING post_id, created, updated
	`
	err := r.db.QueryRow(ctx, q, c.Name, c.Email, c.Body, c.Active, c.ID).
		Scan(&c.PostID, &c.Created, &c.Updated)
	return notFound(err)
}

func (r *commentRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return expectOne(r.db.Exec(ctx, `UPDATE comments SET active = $2 WHERE id = $1`, id, active))
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	return expectOne(r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id))
}

func (r *commentRepo) list(ctx context.Context, q string, args ...any) ([]*models.Comment, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	if err := row.Scan(
		&c.ID, &c.PostID, &c.Name, &c.Email, &c.Body, &c.Created, &c.Updated, &c.Active,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
