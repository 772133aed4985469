package handlers

import (
	"context"
	"net/http"
	"strconv"

	"blog/internal/logger"
	"blog/internal/models"
	helpers "blog/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type CommentReader interface {
	ForPost(ctx context.Context, postID int64, activeOnly bool) ([]*models.Comment, error)
}

type CommentHandler struct {
	comments CommentReader
	posts    PostReader
}

func NewCommentHandler(comments CommentReader, posts PostReader) *CommentHandler {
	return &CommentHandler{comments: comments, posts: posts}
}

// List godoc
// @Summary List the active comments of a published post, oldest first
// @Tags comments
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} helpers.Response{data=[]CommentView}
// @Failure 400 {object} helpers.Response "Invalid post id"
// @Failure 404 {object} helpers.Response "Post not found"
// @Router /posts/{id}/comments/ [get]
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		writeLookupError(w, r, err, "post not found")
		return
	}
	if !post.IsPublished() {
		log.Debug("comments requested for unpublished post", zap.Int64("post_id", id))
		helpers.Error(w, http.StatusNotFound, "post not found")
		return
	}

	list, err := h.comments.ForPost(r.Context(), id, true)
	if err != nil {
		log.Error("listing comments failed", zap.Int64("post_id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "could not list comments")
		return
	}

	helpers.JSON(w, http.StatusOK, newCommentViews(list))
}
