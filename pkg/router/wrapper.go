package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/luckdraw/backend/pkg/errorx"
	"github.com/luckdraw/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = xcontext.WithConfigs(ctx, router.cfg)
		ctx = xcontext.WithLogger(ctx, router.logger)
		ctx = xcontext.WithDB(ctx, router.db)
		ctx = xcontext.WithTokenEngine(ctx, router.tokenEngine)
		ctx = xcontext.WithHTTPRequest(ctx, r)
		ctx = xcontext.WithHTTPWriter(ctx, w)

		ctx = func() context.Context {
			if r.Method != method {
				return xcontext.WithError(ctx,
					errorx.New(errorx.NotImplemented, "Not supported method %s", r.Method))
			}

			for _, m := range router.befores {
				newCtx, err := m(ctx)
				if err != nil {
					return xcontext.WithError(ctx, err)
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			var req Request
			if err := bindRequest(r, method, &req); err != nil {
				return xcontext.WithError(ctx,
					errorx.New(errorx.BadRequest, "Cannot bind the request"))
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				return xcontext.WithError(ctx, err)
			}

			ctx = xcontext.WithResponse(ctx, resp)
			for _, m := range router.afters {
				newCtx, err := m(ctx)
				if err != nil {
					return xcontext.WithError(ctx, err)
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			return ctx
		}()

		for _, closer := range router.closers {
			closer(ctx)
		}
	}
}

func bindRequest(r *http.Request, method string, req any) error {
	switch method {
	case http.MethodGet:
		return bindQuery(r, req)
	default:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return err
		}

		if len(body) == 0 {
			return nil
		}

		return json.Unmarshal(body, req)
	}
}

// bindQuery fills the request struct from url parameters using json tags. Only
// flat structs of string, int, and bool fields are supported, which covers
// every GET request of this service.
func bindQuery(r *http.Request, req any) error {
	v := reflect.ValueOf(req).Elem()
	for i := 0; i < v.NumField(); i++ {
		name := v.Type().Field(i).Tag.Get("json")
		queryVal := r.URL.Query().Get(name)
		if queryVal == "" {
			continue
		}

		switch v.Field(i).Kind() {
		case reflect.String:
			v.Field(i).SetString(queryVal)

		case reflect.Int, reflect.Int64:
			val, err := strconv.ParseInt(queryVal, 10, 64)
			if err != nil {
				return err
			}
			v.Field(i).SetInt(val)

		case reflect.Bool:
			val, err := strconv.ParseBool(queryVal)
			if err != nil {
				return err
			}
			v.Field(i).SetBool(val)
		}
	}

	return nil
}
