package xcontext

import (
	"context"
	"net/http"

	"github.com/luckdraw/backend/config"
	"github.com/luckdraw/backend/internal/model"
	"github.com/luckdraw/backend/pkg/authenticator"
	"github.com/luckdraw/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey       struct{}
	loggerKey        struct{}
	dbKey            struct{}
	dbTransactionKey struct{}
	tokenEngineKey   struct{}
	httpRequestKey   struct{}
	httpWriterKey    struct{}
	requestUserIDKey struct{}
	errorKey         struct{}
	responseKey      struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	return ctx.Value(configsKey{}).(config.Configs)
}

func WithLogger(ctx context.Context, logger logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func Logger(ctx context.Context) logger.Logger {
	return ctx.Value(loggerKey{}).(logger.Logger)
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the transaction begun by WithDBTransaction if one is in flight,
// otherwise the root connection.
func DB(ctx context.Context) *gorm.DB {
	if tx := dbTransaction(ctx); tx != nil {
		return tx
	}

	return ctx.Value(dbKey{}).(*gorm.DB)
}

func dbTransaction(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(dbTransactionKey{}).(*gorm.DB); ok {
		return tx
	}

	return nil
}

func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTransactionKey{}, DB(ctx).Begin())
}

// WithCommitDBTransaction commits the in-flight transaction. Calling
// WithRollbackDBTransaction afterwards (usually via defer) is a no-op.
func WithCommitDBTransaction(ctx context.Context) context.Context {
	if tx := dbTransaction(ctx); tx != nil {
		tx.Commit()
	}

	return context.WithValue(ctx, dbTransactionKey{}, nil)
}

func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if tx := dbTransaction(ctx); tx != nil {
		tx.Rollback()
	}

	return context.WithValue(ctx, dbTransactionKey{}, nil)
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine[model.AccessToken]) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[model.AccessToken] {
	return ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[model.AccessToken])
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	return ctx.Value(httpRequestKey{}).(*http.Request)
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	return ctx.Value(httpWriterKey{}).(http.ResponseWriter)
}

func WithRequestUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestUserIDKey{}, id)
}

// RequestUserID returns the authenticated member id or an empty string for an
// anonymous request.
func RequestUserID(ctx context.Context) string {
	if id, ok := ctx.Value(requestUserIDKey{}).(string); ok {
		return id
	}

	return ""
}

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

func Error(ctx context.Context) error {
	if err, ok := ctx.Value(errorKey{}).(error); ok {
		return err
	}

	return nil
}

func WithResponse(ctx context.Context, resp any) context.Context {
	return context.WithValue(ctx, responseKey{}, resp)
}

func Response(ctx context.Context) any {
	return ctx.Value(responseKey{})
}
