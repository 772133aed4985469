package repository

import (
	"context"

	"blog/internal/models"
)

// AuthorRepository manages the local rows of the external user table that
// posts point at. Deleting an author deletes their posts and comments.
type AuthorRepository struct {
	db DBTX
}

func NewAuthorRepository(db DBTX) *AuthorRepository {
	return &AuthorRepository{db: db}
}

func (r *AuthorRepository) Create(ctx context.Context, a *models.Author) error {
	query := `
	INSERT INTO users (username, email)
	VALUES ($1, $2)
	RETURNING id, created_at`
	return r.db.QueryRow(ctx, query, a.Username, a.Email).Scan(&a.ID, &a.CreatedAt)
}

func (r *AuthorRepository) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	var a models.Author
	err := r.db.QueryRow(ctx,
		`SELECT id, username, email, created_at FROM users WHERE id = $1`, id,
	).Scan(&a.ID, &a.Username, &a.Email, &a.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *AuthorRepository) Delete(ctx context.Context, id int64) error {
	return expectOne(r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id))
}
