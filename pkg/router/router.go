package router

import (
	"context"
	"net/http"

	"github.com/luckdraw/backend/config"
	"github.com/luckdraw/backend/internal/model"
	"github.com/luckdraw/backend/pkg/authenticator"
	"github.com/luckdraw/backend/pkg/logger"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc can replace the request context by returning a non-nil one.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

type CloserFunc func(ctx context.Context)

type Router struct {
	mux *http.ServeMux

	cfg         config.Configs
	db          *gorm.DB
	logger      logger.Logger
	tokenEngine authenticator.TokenEngine[model.AccessToken]

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	r := &Router{
		mux:         http.NewServeMux(),
		cfg:         cfg,
		db:          db,
		logger:      logger,
		tokenEngine: authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.AccessToken),
	}

	r.closers = append(r.closers, handleResponse())
	return r
}

// Branch creates a router sharing the same mux but with an independent
// middleware chain.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.afters = append([]MiddlewareFunc{}, r.afters...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Handler() http.Handler {
	return r.mux
}
