package routes

import (
	"errors"
	"fmt"
	"net/http"

	"blog/internal/handlers"
	"blog/internal/middleware"
	"blog/internal/models"
	helpers "blog/internal/utils/helpers"

	"github.com/gorilla/mux"
)

// Route names used for reversal.
const (
	PostList      = "blog:post_list"
	PostListByTag = "blog:post_list_by_tag"
	PostDetail    = models.PostDetailRoute
	PostComments  = "blog:post_comments"
)

var ErrUnknownRoute = errors.New("unknown route")

func InitRoutes(router *mux.Router, postH *handlers.PostHandler, commentH *handlers.CommentHandler) {
	router.Use(middleware.RequestID, middleware.Logging, middleware.Recoverer)

	router.NotFoundHandler = middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		helpers.Error(w, http.StatusNotFound, "not found")
	}))

	router.HandleFunc("/", postH.List).Methods(http.MethodGet).Name(PostList)
	router.HandleFunc("/tag/{tag}/", postH.ListByTag).Methods(http.MethodGet).Name(PostListByTag)
	router.HandleFunc("/posts/{id:[0-9]+}/comments/", commentH.List).Methods(http.MethodGet).Name(PostComments)
	router.HandleFunc("/{year:[0-9]+}/{month:[0-9]{1,2}}/{day:[0-9]{1,2}}/{slug}/", postH.Detail).
		Methods(http.MethodGet).Name(PostDetail)
}

// Resolver reverses named routes of a router into paths.
type Resolver struct {
	router *mux.Router
}

func NewResolver(router *mux.Router) *Resolver {
	return &Resolver{router: router}
}

// Reverse fills the route's variables from args, in the order they appear
// in the path template.
func (res *Resolver) Reverse(name string, args ...string) (string, error) {
	route := res.router.Get(name)
	if route == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}

	names, err := route.GetVarNames()
	if err != nil {
		return "", err
	}
	if len(names) != len(args) {
		return "", fmt.Errorf("route %q takes %d arguments, got %d", name, len(names), len(args))
	}

	pairs := make([]string, 0, 2*len(args))
	for i, n := range names {
		pairs = append(pairs, n, args[i])
	}

	u, err := route.URLPath(pairs...)
	if err != nil {
		return "", fmt.Errorf("reverse %q: %w", name, err)
	}
	return u.Path, nil
}
