package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/luckdraw/backend/config"
	"github.com/luckdraw/backend/pkg/errorx"
	"github.com/luckdraw/backend/pkg/logger"

	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
}

type echoResponse struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
}

func echoHandler(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	if req.Name == "fail" {
		return nil, errorx.New(errorx.BadRequest, "Bad name")
	}

	return &echoResponse{Name: req.Name, Limit: req.Limit}, nil
}

func newTestRouter() *Router {
	cfg := config.Configs{
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     "secret",
				Expiration: config.Duration(time.Minute),
			},
		},
	}

	return New(nil, cfg, logger.NewLogger(logger.SILENCE))
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string) response {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRouter_GET_bindsQuery(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo", echoHandler)

	resp := doRequest(t, r.Handler(), http.MethodGet, "/echo?name=alice&limit=3", "")
	require.Zero(t, resp.Code)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "alice", data["name"])
	require.EqualValues(t, 3, data["limit"])
}

func TestRouter_POST_bindsJsonBody(t *testing.T) {
	r := newTestRouter()
	POST(r, "/echo", echoHandler)

	resp := doRequest(t, r.Handler(), http.MethodPost, "/echo", `{"name":"bob","limit":7}`)
	require.Zero(t, resp.Code)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "bob", data["name"])
	require.EqualValues(t, 7, data["limit"])
}

func TestRouter_errorResponse(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo", echoHandler)

	resp := doRequest(t, r.Handler(), http.MethodGet, "/echo?name=fail", "")
	require.EqualValues(t, errorx.BadRequest, resp.Code)
	require.Equal(t, "Bad name", resp.Error)
}

func TestRouter_methodMismatch(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo", echoHandler)

	resp := doRequest(t, r.Handler(), http.MethodPost, "/echo", "")
	require.EqualValues(t, errorx.NotImplemented, resp.Code)
}

func TestRouter_beforeMiddlewareRejects(t *testing.T) {
	r := newTestRouter()

	branch := r.Branch()
	branch.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	})
	GET(branch, "/private", echoHandler)
	GET(r, "/public", echoHandler)

	resp := doRequest(t, r.Handler(), http.MethodGet, "/private?name=alice", "")
	require.EqualValues(t, errorx.Unauthenticated, resp.Code)

	// The branch must not affect routes registered on the parent.
	resp = doRequest(t, r.Handler(), http.MethodGet, "/public?name=alice", "")
	require.Zero(t, resp.Code)
}
