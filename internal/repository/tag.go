package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"blog/internal/models"
)

type TagRepo struct {
	db DBTX
}

func NewTagRepo(db DBTX) *TagRepo { return &TagRepo{db: db} }

// Set replaces the tag set of a post. Tags are matched by slug and created
// on first use.
func (r *TagRepo) Set(ctx context.Context, postID int64, tags []models.Tag) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM tagged_posts WHERE post_id = $1`, postID); err != nil {
			return err
		}

		for _, t := range tags {
			var tagID int64
			err := tx.QueryRow(ctx, `
				INSERT INTO tags (name, slug) VALUES ($1, $2)
				ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
				RETURNING id`,
				t.Name, t.Slug,
			).Scan(&tagID)
			if err != nil {
				return err
			}

			if _, err := tx.Exec(ctx,
				`INSERT INTO tagged_posts (post_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				postID, tagID,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TagRepo) ForPost(ctx context.Context, postID int64) ([]models.Tag, error) {
	return r.list(ctx, `
		SELECT t.id, t.name, t.slug
		FROM tags t JOIN tagged_posts tp ON tp.tag_id = t.id
		WHERE tp.post_id = $1
		ORDER BY t.name`, postID)
}

func (r *TagRepo) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var t models.Tag
	err := r.db.QueryRow(ctx, `SELECT id, name, slug FROM tags WHERE slug = $1`, slug).
		Scan(&t.ID, &t.Name, &t.Slug)
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *TagRepo) list(ctx context.Context, q string, args ...any) ([]models.Tag, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
