package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"blog/internal/models"
	"blog/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func newTestPostService() (*postService, *fakePostRepo, *fakeTagStore) {
	repo := newFakePostRepo()
	tags := newFakeTagStore()
	repo.tagStore = tags
	svc := NewPostService(repo, tags).(*postService)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, tags
}

func TestCreatePostDefaults(t *testing.T) {
	svc, _, tags := newTestPostService()

	p, err := svc.Create(context.Background(), &models.Post{
		Title:    "  Hello, World!  ",
		AuthorID: 1,
		Body:     "text",
	}, []string{" Go ", "go", "SQL", "  "})
	require.NoError(t, err)

	assert.Equal(t, "Hello, World!", p.Title)
	assert.Equal(t, "hello-world", p.Slug)
	assert.Equal(t, fixedNow, p.Publish)
	assert.Equal(t, models.StatusDraft, p.Status)
	assert.Equal(t, []string{"go", "sql"}, p.Tags)
	assert.Equal(t, []models.Tag{{Name: "go", Slug: "go"}, {Name: "sql", Slug: "sql"}}, tags.byPost[p.ID])
}

func TestCreatePostValidation(t *testing.T) {
	svc, repo, _ := newTestPostService()

	_, err := svc.Create(context.Background(), &models.Post{Title: "x", AuthorID: 1}, nil)
	require.Error(t, err)
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = svc.Create(context.Background(), &models.Post{
		Title: "x", AuthorID: 1, Body: "b", Status: "ZZ",
	}, nil)
	assert.Error(t, err)

	assert.Empty(t, repo.posts, "invalid posts never reach the repository")
}

func TestCreatePostTooManyTags(t *testing.T) {
	svc, _, _ := newTestPostService()

	tags := make([]string, maxTags+1)
	for i := range tags {
		tags[i] = fmt.Sprintf("tag%d", i)
	}

	_, err := svc.Create(context.Background(), &models.Post{Title: "x", AuthorID: 1, Body: "b"}, tags)
	assert.Error(t, err)
}

func TestCreatePostTagFailureStoresNothing(t *testing.T) {
	svc, repo, tags := newTestPostService()
	ctx := context.Background()
	tags.setErr = errors.New("tag write failed")

	p, err := svc.Create(ctx, &models.Post{Title: "Hi", AuthorID: 1, Body: "b"}, []string{"go"})
	require.Error(t, err)
	assert.Nil(t, p)
	assert.Empty(t, repo.posts)
	assert.Empty(t, tags.byPost)

	tags.setErr = nil
	p, err = svc.Create(ctx, &models.Post{Title: "Hi", AuthorID: 1, Body: "b"}, []string{"go"})
	require.NoError(t, err, "a retry is not blocked by a half-written post")
	assert.Equal(t, []string{"go"}, p.Tags)
}

func TestCreatePostSlugPerDay(t *testing.T) {
	svc, _, _ := newTestPostService()
	ctx := context.Background()

	mk := func(publish time.Time) error {
		_, err := svc.Create(ctx, &models.Post{
			Title: "Hi", Slug: "hi", AuthorID: 1, Body: "b", Publish: publish,
		}, nil)
		return err
	}

	require.NoError(t, mk(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)))
	require.NoError(t, mk(time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)))

	err := mk(time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.True(t, repository.IsSlugTaken(err), "constraint error is returned unchanged")
}

func TestPublishLifecycle(t *testing.T) {
	svc, _, _ := newTestPostService()
	ctx := context.Background()

	p, err := svc.Create(ctx, &models.Post{
		Title: "Hi", Slug: "hi", AuthorID: 1, Body: "b",
		Publish: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil)
	require.NoError(t, err)
	assert.False(t, p.IsPublished())

	p, err = svc.SetStatus(ctx, p.ID, models.StatusPublished)
	require.NoError(t, err)
	assert.True(t, p.IsPublished())

	p, err = svc.SetStatus(ctx, p.ID, models.StatusDraft)
	require.NoError(t, err)
	assert.False(t, p.IsPublished())

	_, err = svc.SetStatus(ctx, p.ID, "XX")
	assert.ErrorIs(t, err, models.ErrInvalidStatus)

	_, err = svc.SetStatus(ctx, 999, models.StatusPublished)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdatePost(t *testing.T) {
	svc, repo, _ := newTestPostService()
	ctx := context.Background()

	p, err := svc.Create(ctx, &models.Post{Title: "Hi", AuthorID: 1, Body: "b"}, nil)
	require.NoError(t, err)

	p.Title = " Hello "
	updated, err := svc.Update(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "Hello", updated.Title)
	assert.Equal(t, "Hello", repo.posts[p.ID].Title)

	p.Slug = "not a slug"
	_, err = svc.Update(ctx, p)
	assert.Error(t, err)

	_, err = svc.Update(ctx, &models.Post{ID: 42, Title: "x", Slug: "x", AuthorID: 1, Body: "b", Publish: fixedNow, Status: models.StatusDraft})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSetTagsAndDelete(t *testing.T) {
	svc, repo, _ := newTestPostService()
	ctx := context.Background()

	p, err := svc.Create(ctx, &models.Post{Title: "Hi", AuthorID: 1, Body: "b"}, []string{"go"})
	require.NoError(t, err)

	got, err := svc.SetTags(ctx, p.ID, []string{"Databases", "Crème"})
	require.NoError(t, err)
	assert.Equal(t, []models.Tag{{Name: "databases", Slug: "databases"}, {Name: "crème", Slug: "creme"}}, got)

	tag, err := svc.Tag(ctx, "creme")
	require.NoError(t, err)
	assert.Equal(t, "crème", tag.Name)

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.Empty(t, repo.posts)
	assert.ErrorIs(t, svc.Delete(ctx, p.ID), repository.ErrNotFound)
}

func TestAccessorsUseQueries(t *testing.T) {
	svc, repo, _ := newTestPostService()
	ctx := context.Background()

	_, err := svc.Published(ctx)
	require.NoError(t, err)
	assert.Equal(t, repository.Published(), repo.lastQry)

	_, err = svc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, repository.Objects(), repo.lastQry)

	_, err = svc.PublishedDetail(ctx, 2024, 1, 1, "hi")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, repository.Published().On(2024, 1, 1).WithSlug("hi"), repo.lastQry)
}
