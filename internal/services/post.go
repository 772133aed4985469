package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"blog/internal/logger"
	"blog/internal/models"
	"blog/internal/repository"
	"blog/internal/slug"

	"go.uber.org/zap"
)

const maxTags = 20

type PostService interface {
	Create(ctx context.Context, p *models.Post, tags []string) (*models.Post, error)
	Update(ctx context.Context, p *models.Post) (*models.Post, error)
	SetStatus(ctx context.Context, id int64, status models.Status) (*models.Post, error)
	SetTags(ctx context.Context, id int64, tags []string) ([]models.Tag, error)
	Delete(ctx context.Context, id int64) error

	GetByID(ctx context.Context, id int64) (*models.Post, error)
	All(ctx context.Context) ([]*models.Post, error)
	Published(ctx context.Context) ([]*models.Post, error)
	Find(ctx context.Context, q repository.PostQuery) ([]*models.Post, error)
	PublishedDetail(ctx context.Context, year, month, day int, postSlug string) (*models.Post, error)
	Tag(ctx context.Context, tagSlug string) (*models.Tag, error)
}

// TagStore is the tagging collaborator a post service hands tag sets to.
type TagStore interface {
	Set(ctx context.Context, postID int64, tags []models.Tag) error
	ForPost(ctx context.Context, postID int64) ([]models.Tag, error)
	GetBySlug(ctx context.Context, tagSlug string) (*models.Tag, error)
}

type postService struct {
	repo repository.PostRepo
	tags TagStore
	now  func() time.Time
}

func NewPostService(repo repository.PostRepo, tags TagStore) PostService {
	return &postService{repo: repo, tags: tags, now: time.Now}
}

func (s *postService) Create(ctx context.Context, p *models.Post, tags []string) (*models.Post, error) {
	log := logger.WithCtx(ctx)

	p.Title = strings.TrimSpace(p.Title)
	p.Slug = strings.TrimSpace(p.Slug)
	if p.Slug == "" {
		p.Slug = slug.Make(p.Title)
	}
	p.BeforeCreate(s.now())

	log.Info("creating post",
		zap.String("title", p.Title),
		zap.String("slug", p.Slug),
		zap.Int64("author_id", p.AuthorID),
		zap.String("status", p.Status.String()),
		zap.Int("tags_count", len(tags)),
	)

	normalized, err := normalizeTags(tags)
	if err != nil {
		log.Warn("post validation failed: tags", zap.Error(err))
		return nil, err
	}
	if err := p.Validate(); err != nil {
		log.Warn("post validation failed", zap.Error(err))
		return nil, err
	}

	if err := s.repo.CreateWithTags(ctx, p, normalized); err != nil {
		if repository.IsSlugTaken(err) {
			log.Warn("slug already used on that date",
				zap.String("slug", p.Slug), zap.Time("publish", p.Publish))
		} else {
			log.Error("create post failed (repo)", zap.Error(err))
		}
		return nil, err
	}
	p.Tags = tagNames(normalized)

	log.Info("post created", zap.Int64("id", p.ID), zap.String("status", p.Status.String()))
	return p, nil
}

func (s *postService) Update(ctx context.Context, p *models.Post) (*models.Post, error) {
	log := logger.WithCtx(ctx)
	log.Info("updating post", zap.Int64("id", p.ID), zap.String("slug", p.Slug))

	p.Title = strings.TrimSpace(p.Title)
	p.Slug = strings.TrimSpace(p.Slug)
	if err := p.Validate(); err != nil {
		log.Warn("post validation failed", zap.Int64("id", p.ID), zap.Error(err))
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("post to update not found", zap.Int64("id", p.ID))
		} else {
			log.Error("update post failed (repo)", zap.Int64("id", p.ID), zap.Error(err))
		}
		return nil, err
	}

	log.Info("post updated", zap.Int64("id", p.ID))
	return p, nil
}

func (s *postService) SetStatus(ctx context.Context, id int64, status models.Status) (*models.Post, error) {
	log := logger.WithCtx(ctx)
	log.Info("changing post status", zap.Int64("id", id), zap.String("status", status.String()))

	if !status.Valid() {
		err := fmt.Errorf("%w: %q", models.ErrInvalidStatus, status.String())
		log.Warn("post status rejected", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		log.Error("set post status failed (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error("reading post after status change failed (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	log.Info("post status changed", zap.Int64("id", id), zap.String("status", p.Status.Label()))
	return p, nil
}

func (s *postService) SetTags(ctx context.Context, id int64, tags []string) ([]models.Tag, error) {
	log := logger.WithCtx(ctx)
	log.Info("setting post tags", zap.Int64("id", id), zap.Strings("tags", tags))

	normalized, err := normalizeTags(tags)
	if err != nil {
		log.Warn("post validation failed: tags", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	if err := s.tags.Set(ctx, id, normalized); err != nil {
		log.Error("set post tags failed (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	return s.tags.ForPost(ctx, id)
}

func (s *postService) Delete(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	log.Info("deleting post", zap.Int64("id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("delete post failed (repo)", zap.Int64("id", id), zap.Error(err))
		return err
	}

	log.Info("post deleted", zap.Int64("id", id))
	return nil
}

func (s *postService) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.WithCtx(ctx).Warn("post not found (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *postService) All(ctx context.Context) ([]*models.Post, error) {
	return s.Find(ctx, repository.Objects())
}

func (s *postService) Published(ctx context.Context) ([]*models.Post, error) {
	return s.Find(ctx, repository.Published())
}

func (s *postService) Find(ctx context.Context, q repository.PostQuery) ([]*models.Post, error) {
	list, err := s.repo.Find(ctx, q)
	if err != nil {
		logger.WithCtx(ctx).Error("listing posts failed (repo)", zap.Error(err))
		return nil, err
	}
	logger.WithCtx(ctx).Debug("posts listed", zap.Int("count", len(list)))
	return list, nil
}

// PublishedDetail resolves the arguments of a canonical post URL.
func (s *postService) PublishedDetail(ctx context.Context, year, month, day int, postSlug string) (*models.Post, error) {
	q := repository.Published().On(year, month, day).WithSlug(postSlug)
	p, err := s.repo.Get(ctx, q)
	if err != nil {
		logger.WithCtx(ctx).Debug("published post lookup failed",
			zap.Int("year", year), zap.Int("month", month), zap.Int("day", day),
			zap.String("slug", postSlug), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *postService) Tag(ctx context.Context, tagSlug string) (*models.Tag, error) {
	return s.tags.GetBySlug(ctx, tagSlug)
}

// normalizeTags lowercases and trims names, drops empties and duplicate slugs.
func normalizeTags(in []string) ([]models.Tag, error) {
	seen := map[string]struct{}{}
	out := make([]models.Tag, 0, len(in))
	for _, name := range in {
		name = strings.ToLower(strings.TrimSpace(name))
		s := slug.Make(name)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}

		t := models.Tag{Name: name, Slug: s}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if len(out) > maxTags {
		return nil, fmt.Errorf("at most %d tags per post", maxTags)
	}
	return out, nil
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	sort.Strings(names)
	return names
}
