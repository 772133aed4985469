package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"blog/internal/logger"
	"blog/internal/models"
	"blog/internal/repository"
	helpers "blog/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// PostReader is the read side of the post service the HTTP layer needs.
type PostReader interface {
	Find(ctx context.Context, q repository.PostQuery) ([]*models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	PublishedDetail(ctx context.Context, year, month, day int, postSlug string) (*models.Post, error)
	Tag(ctx context.Context, tagSlug string) (*models.Tag, error)
}

type PostHandler struct {
	posts    PostReader
	urls     models.URLResolver
	pageSize int
}

func NewPostHandler(posts PostReader, urls models.URLResolver, pageSize int) *PostHandler {
	return &PostHandler{posts: posts, urls: urls, pageSize: pageSize}
}

// List godoc
// @Summary List published posts, newest first
// @Tags posts
// @Produce json
// @Param page query int false "Page number, from 1"
// @Success 200 {object} helpers.Response{data=[]PostView,meta=helpers.Page}
// @Failure 400 {object} helpers.Response "Invalid page"
// @Router / [get]
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, repository.Published())
}

// ListByTag godoc
// @Summary List published posts carrying a tag
// @Tags posts
// @Produce json
// @Param tag path string true "Tag slug"
// @Param page query int false "Page number, from 1"
// @Success 200 {object} helpers.Response{data=[]PostView,meta=helpers.Page}
// @Failure 400 {object} helpers.Response "Invalid page"
// @Failure 404 {object} helpers.Response "Tag not found"
// @Router /tag/{tag}/ [get]
func (h *PostHandler) ListByTag(w http.ResponseWriter, r *http.Request) {
	tagSlug := mux.Vars(r)["tag"]
	if _, err := h.posts.Tag(r.Context(), tagSlug); err != nil {
		writeLookupError(w, r, err, "tag not found")
		return
	}
	h.list(w, r, repository.Published().Tagged(tagSlug))
}

func (h *PostHandler) list(w http.ResponseWriter, r *http.Request, q repository.PostQuery) {
	log := logger.WithCtx(r.Context())

	page, err := pageParam(r)
	if err != nil {
		log.Warn("bad page parameter", zap.String("page", r.URL.Query().Get("page")))
		helpers.Error(w, http.StatusBadRequest, "invalid page")
		return
	}
	offset := 0
	if h.pageSize > 0 {
		offset = (page - 1) * h.pageSize
	}

	posts, err := h.posts.Find(r.Context(), q.Page(h.pageSize, offset))
	if err != nil {
		log.Error("listing posts failed", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "could not list posts")
		return
	}

	helpers.JSONPage(w, http.StatusOK, newPostViews(r.Context(), posts, h.urls),
		helpers.Page{Limit: h.pageSize, Offset: offset, Count: len(posts)})
}

// Detail godoc
// @Summary Get a published post by its canonical URL
// @Tags posts
// @Produce json
// @Param year path int true "Publish year (UTC)"
// @Param month path int true "Publish month (UTC)"
// @Param day path int true "Publish day (UTC)"
// @Param slug path string true "Post slug"
// @Success 200 {object} helpers.Response{data=PostView}
// @Failure 404 {object} helpers.Response "Post not found"
// @Router /{year}/{month}/{day}/{slug}/ [get]
func (h *PostHandler) Detail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, month, day, ok := parseDay(vars["year"], vars["month"], vars["day"])
	if !ok {
		helpers.Error(w, http.StatusNotFound, "post not found")
		return
	}

	p, err := h.posts.PublishedDetail(r.Context(), year, month, day, vars["slug"])
	if err != nil {
		writeLookupError(w, r, err, "post not found")
		return
	}

	helpers.JSON(w, http.StatusOK, newPostView(r.Context(), p, h.urls))
}

func pageParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if page < 1 {
		return 0, errors.New("page must be positive")
	}
	return page, nil
}

// parseDay accepts only real calendar dates.
func parseDay(ys, ms, ds string) (year, month, day int, ok bool) {
	var err error
	if year, err = strconv.Atoi(ys); err != nil {
		return 0, 0, 0, false
	}
	if month, err = strconv.Atoi(ms); err != nil {
		return 0, 0, 0, false
	}
	if day, err = strconv.Atoi(ds); err != nil {
		return 0, 0, 0, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

func writeLookupError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	if errors.Is(err, repository.ErrNotFound) {
		helpers.Error(w, http.StatusNotFound, notFoundMsg)
		return
	}
	logger.WithCtx(r.Context()).Error("lookup failed", zap.String("path", r.URL.Path), zap.Error(err))
	helpers.Error(w, http.StatusInternalServerError, "internal server error")
}
