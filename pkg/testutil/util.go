package testutil

import (
	"context"
	"time"

	"github.com/luckdraw/backend/config"
	"github.com/luckdraw/backend/internal/model"
	"github.com/luckdraw/backend/migration"
	"github.com/luckdraw/backend/pkg/authenticator"
	"github.com/luckdraw/backend/pkg/logger"
	"github.com/luckdraw/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		ApiServer: config.ServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     "secret",
				Expiration: config.Duration(time.Minute),
			},
		},
		Kafka: config.KafkaConfigs{
			WinnerTopic: "draw-winners",
		},
		File: config.FileConfigs{
			MaxSize: 2 << 20,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.AccessToken))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
