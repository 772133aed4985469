package handlers

import (
	"context"
	"time"

	"blog/internal/logger"
	"blog/internal/models"

	"go.uber.org/zap"
)

type PostView struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	AuthorID    int64         `json:"authorId"`
	Body        string        `json:"body"`
	Publish     time.Time     `json:"publish"`
	Created     time.Time     `json:"created"`
	Updated     time.Time     `json:"updated"`
	Status      models.Status `json:"status"`
	StatusLabel string        `json:"statusLabel"`
	Tags        []string      `json:"tags"`
	URL         string        `json:"url,omitempty"`
}

type CommentView struct {
	ID      int64     `json:"id"`
	PostID  int64     `json:"postId"`
	Name    string    `json:"name"`
	Body    string    `json:"body"`
	Created time.Time `json:"created"`
}

func newPostView(ctx context.Context, p *models.Post, urls models.URLResolver) PostView {
	v := PostView{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		AuthorID:    p.AuthorID,
		Body:        p.Body,
		Publish:     p.Publish,
		Created:     p.Created,
		Updated:     p.Updated,
		Status:      p.Status,
		StatusLabel: p.Status.Label(),
		Tags:        p.Tags,
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}

	url, err := p.AbsoluteURL(urls)
	if err != nil {
		logger.WithCtx(ctx).Warn("post url not built", zap.Int64("id", p.ID), zap.Error(err))
	}
	v.URL = url
	return v
}

func newPostViews(ctx context.Context, posts []*models.Post, urls models.URLResolver) []PostView {
	out := make([]PostView, len(posts))
	for i, p := range posts {
		out[i] = newPostView(ctx, p, urls)
	}
	return out
}

func newCommentViews(comments []*models.Comment) []CommentView {
	out := make([]CommentView, len(comments))
	for i, c := range comments {
		out[i] = CommentView{ID: c.ID, PostID: c.PostID, Name: c.Name, Body: c.Body, Created: c.Created}
	}
	return out
}
