package testutil

import (
	"context"
	"time"

	"github.com/rewardlab/backend/config"
	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/pkg/logger"
	"github.com/rewardlab/backend/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "testing",
		Auth: config.AuthConfigs{
			AccessTokenName: "access_token",
			AccessToken: config.TokenConfigs{
				Secret:     "secret",
				Expiration: time.Minute,
			},
		},
	}
}

// MockContext returns a context carrying an in-memory database with the full
// schema migrated, plus testing configs and a quiet logger.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	if err := entity.MigrateTable(db); err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithDB(ctx, db)
	ctx = xcontext.WithConfigs(ctx, MockConfigs())
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))

	return ctx
}

// MockContextWithUserID is MockContext plus an authenticated request user.
func MockContextWithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = MockContext()
	}

	return xcontext.WithRequestUserID(ctx, userID)
}
