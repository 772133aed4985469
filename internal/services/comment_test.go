package services

import (
	"context"
	"testing"
	"time"

	"blog/internal/models"
	"blog/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommentService(t *testing.T) (*CommentService, *fakeCommentRepo, *models.Post) {
	t.Helper()
	posts := newFakePostRepo()
	post := &models.Post{
		Title: "Hi", Slug: "hi", AuthorID: 1, Body: "b",
		Publish: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Status: models.StatusPublished,
	}
	require.NoError(t, posts.Create(context.Background(), post))

	comments := newFakeCommentRepo()
	return NewCommentService(comments, posts), comments, post
}

func TestAddComment(t *testing.T) {
	svc, repo, post := newTestCommentService(t)
	ctx := context.Background()

	c, err := svc.Add(ctx, post.ID, " Ann ", "ann@example.com", " Great post ")
	require.NoError(t, err)
	assert.Equal(t, post.ID, c.PostID)
	assert.Equal(t, "Ann", c.Name)
	assert.Equal(t, "Great post", c.Body)
	assert.True(t, c.Active)
	assert.Equal(t, "Comment by Ann on Hi", c.String())
	assert.Len(t, repo.comments, 1)

	_, err = svc.Add(ctx, post.ID, "Ann", "not-an-email", "x")
	assert.Error(t, err)

	_, err = svc.Add(ctx, 999, "Ann", "ann@example.com", "x")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Len(t, repo.comments, 1)
}

func TestModerateComments(t *testing.T) {
	svc, _, post := newTestCommentService(t)
	ctx := context.Background()

	first, err := svc.Add(ctx, post.ID, "Ann", "ann@example.com", "one")
	require.NoError(t, err)
	_, err = svc.Add(ctx, post.ID, "Bob", "bob@example.com", "two")
	require.NoError(t, err)

	require.NoError(t, svc.SetActive(ctx, first.ID, false))

	visible, err := svc.ForPost(ctx, post.ID, true)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Bob", visible[0].Name)

	all, err := svc.ForPost(ctx, post.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.ErrorIs(t, svc.SetActive(ctx, 999, true), repository.ErrNotFound)
}

func TestUpdateAndDeleteComment(t *testing.T) {
	svc, repo, post := newTestCommentService(t)
	ctx := context.Background()

	c, err := svc.Add(ctx, post.ID, "Ann", "ann@example.com", "one")
	require.NoError(t, err)

	c.Body = "edited"
	c.PostID = post.ID + 1
	require.NoError(t, svc.Update(ctx, c))
	assert.Equal(t, post.ID, c.PostID)
	assert.Equal(t, "edited", repo.comments[c.ID].Body)

	c.Email = ""
	assert.Error(t, svc.Update(ctx, c))

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.ErrorIs(t, svc.Delete(ctx, c.ID), repository.ErrNotFound)
}
