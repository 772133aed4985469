package services

import (
	"context"
	"strings"

	"blog/internal/logger"
	"blog/internal/models"
	"blog/internal/repository"

	"go.uber.org/zap"
)

type CommentService struct {
	repo  repository.CommentRepo
	posts repository.PostRepo
}

func NewCommentService(repo repository.CommentRepo, posts repository.PostRepo) *CommentService {
	return &CommentService{repo: repo, posts: posts}
}

// Add stores a new active comment on the post with the given id.
func (s *CommentService) Add(ctx context.Context, postID int64, name, email, body string) (*models.Comment, error) {
	log := logger.WithCtx(ctx)
	log.Info("adding comment", zap.Int64("post_id", postID), zap.String("name", name))

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		log.Warn("post for comment not found (repo)", zap.Int64("post_id", postID), zap.Error(err))
		return nil, err
	}

	c, err := models.NewComment(post,
		strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(body))
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		log.Warn("comment validation failed", zap.Int64("post_id", postID), zap.Error(err))
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		log.Error("create comment failed (repo)", zap.Int64("post_id", postID), zap.Error(err))
		return nil, err
	}

	log.Info("comment added", zap.Int64("id", c.ID), zap.Int64("post_id", postID))
	return c, nil
}

// ForPost lists a post's comments in chronological order.
func (s *CommentService) ForPost(ctx context.Context, postID int64, activeOnly bool) ([]*models.Comment, error) {
	list, err := s.repo.ListByPost(ctx, postID, activeOnly)
	if err != nil {
		logger.WithCtx(ctx).Error("listing comments failed (repo)", zap.Int64("post_id", postID), zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *CommentService) Update(ctx context.Context, c *models.Comment) error {
	log := logger.WithCtx(ctx)
	log.Info("updating comment", zap.Int64("id", c.ID))

	if err := c.Validate(); err != nil {
		log.Warn("comment validation failed", zap.Int64("id", c.ID), zap.Error(err))
		return err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		log.Error("update comment failed (repo)", zap.Int64("id", c.ID), zap.Error(err))
		return err
	}
	return nil
}

// SetActive is the moderation switch: inactive comments stay stored but are
// hidden from public listings.
func (s *CommentService) SetActive(ctx context.Context, id int64, active bool) error {
	log := logger.WithCtx(ctx)
	log.Info("moderating comment", zap.Int64("id", id), zap.Bool("active", active))

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		log.Error("moderate comment failed (repo)", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *CommentService) Delete(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	log.Info("deleting comment", zap.Int64("id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("delete comment failed (repo)", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}
