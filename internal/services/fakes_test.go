package services

import (
	"context"
	"sort"
	"time"

	"blog/internal/models"
	"blog/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

// fakePostRepo keeps posts in memory and enforces the slug-per-day rule the
// way the schema does, returning the same PgError.
type fakePostRepo struct {
	posts   map[int64]*models.Post
	nextID  int64
	lastQry repository.PostQuery
	getErr  error

	// tagStore receives the tags of CreateWithTags, when set.
	tagStore *fakeTagStore
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[int64]*models.Post{}}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func (f *fakePostRepo) conflict(p *models.Post) error {
	for _, other := range f.posts {
		if other.ID != p.ID && other.Slug == p.Slug && sameDay(other.Publish, p.Publish) {
			return &pgconn.PgError{Code: "23505", ConstraintName: "posts_slug_publish_date_key"}
		}
	}
	return nil
}

func (f *fakePostRepo) Create(_ context.Context, p *models.Post) error {
	if err := f.conflict(p); err != nil {
		return err
	}
	f.nextID++
	p.ID = f.nextID
	p.Created = time.Now()
	p.Updated = p.Created
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

// CreateWithTags stores nothing when the tag write fails, like the
// transaction it stands in for.
func (f *fakePostRepo) CreateWithTags(ctx context.Context, p *models.Post, tags []models.Tag) error {
	if err := f.conflict(p); err != nil {
		return err
	}
	if len(tags) > 0 && f.tagStore != nil && f.tagStore.setErr != nil {
		return f.tagStore.setErr
	}
	if err := f.Create(ctx, p); err != nil {
		return err
	}
	if len(tags) > 0 && f.tagStore != nil {
		return f.tagStore.Set(ctx, p.ID, tags)
	}
	return nil
}

func (f *fakePostRepo) GetByID(_ context.Context, id int64) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) Get(_ context.Context, q repository.PostQuery) (*models.Post, error) {
	f.lastQry = q
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, p := range f.posts {
		cp := *p
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakePostRepo) Find(_ context.Context, q repository.PostQuery) ([]*models.Post, error) {
	f.lastQry = q
	out := []*models.Post{}
	for _, p := range f.posts {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Publish.After(out[j].Publish) })
	return out, nil
}

func (f *fakePostRepo) Update(_ context.Context, p *models.Post) error {
	if _, ok := f.posts[p.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := f.conflict(p); err != nil {
		return err
	}
	p.Updated = time.Now()
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

func (f *fakePostRepo) SetStatus(_ context.Context, id int64, status models.Status) error {
	p, ok := f.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Status = status
	return nil
}

func (f *fakePostRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

type fakeTagStore struct {
	byPost map[int64][]models.Tag
	setErr error
}

func newFakeTagStore() *fakeTagStore {
	return &fakeTagStore{byPost: map[int64][]models.Tag{}}
}

func (f *fakeTagStore) Set(_ context.Context, postID int64, tags []models.Tag) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.byPost[postID] = append([]models.Tag(nil), tags...)
	return nil
}

func (f *fakeTagStore) ForPost(_ context.Context, postID int64) ([]models.Tag, error) {
	return f.byPost[postID], nil
}

func (f *fakeTagStore) GetBySlug(_ context.Context, tagSlug string) (*models.Tag, error) {
	for _, tags := range f.byPost {
		for _, t := range tags {
			if t.Slug == tagSlug {
				cp := t
				return &cp, nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

type fakeCommentRepo struct {
	comments map[int64]*models.Comment
	nextID   int64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[int64]*models.Comment{}}
}

func (f *fakeCommentRepo) Create(_ context.Context, c *models.Comment) error {
	f.nextID++
	c.ID = f.nextID
	c.Created = time.Now()
	c.Updated = c.Created
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) ListByPost(_ context.Context, postID int64, activeOnly bool) ([]*models.Comment, error) {
	out := []*models.Comment{}
	for _, c := range f.comments {
		if c.PostID == postID && (!activeOnly || c.Active) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCommentRepo) All(ctx context.Context) ([]*models.Comment, error) {
	out := []*models.Comment{}
	for _, c := range f.comments {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCommentRepo) Update(_ context.Context, c *models.Comment) error {
	stored, ok := f.comments[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	c.PostID = stored.PostID
	cp := *c
	f.comments[c.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) SetActive(_ context.Context, id int64, active bool) error {
	c, ok := f.comments[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.Active = active
	return nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.comments, id)
	return nil
}
