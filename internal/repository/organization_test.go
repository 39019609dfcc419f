package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/luckdraw/backend/internal/entity"
	"github.com/luckdraw/backend/internal/repository"
	"github.com/luckdraw/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func Test_organizationRepository_GetBySlug_fillsCache(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	var cachedKey string
	var cachedObj any
	var cachedTTL time.Duration
	redisClient := &testutil.MockRedisClient{
		SetObjFunc: func(_ context.Context, key string, obj any, ttl time.Duration) error {
			cachedKey = key
			cachedObj = obj
			cachedTTL = ttl
			return nil
		},
	}
	organizationRepo := repository.NewOrganizationRepository(redisClient)

	// First lookup misses the cache, reads the database and fills the cache.
	organization, err := organizationRepo.GetBySlug(ctx, "joes-salon")
	require.NoError(t, err)
	require.Equal(t, "Joe's Salon", organization.Name)

	require.Equal(t, "cache:organization:slug:joes-salon", cachedKey)
	require.Equal(t, 10*time.Minute, cachedTTL)
	cached, ok := cachedObj.(entity.Organization)
	require.True(t, ok)
	require.Equal(t, testutil.Organization1ID, cached.ID)
}

func Test_organizationRepository_GetBySlug_cacheHit(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	// The slug does not exist in the database, so a successful lookup proves
	// the cached copy was served without touching it.
	redisClient := &testutil.MockRedisClient{
		GetObjFunc: func(_ context.Context, key string, v any) error {
			require.Equal(t, "cache:organization:slug:ghost", key)
			*v.(*entity.Organization) = entity.Organization{
				Base: entity.Base{ID: "ghost-organization"},
				Name: "From Cache",
				Slug: "ghost",
			}
			return nil
		},
	}
	organizationRepo := repository.NewOrganizationRepository(redisClient)

	organization, err := organizationRepo.GetBySlug(ctx, "ghost")
	require.NoError(t, err)
	require.Equal(t, "From Cache", organization.Name)
	require.Equal(t, "ghost-organization", organization.ID)
}

func Test_organizationRepository_UpdateByID_invalidatesCache(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	var deletedKeys []string
	redisClient := &testutil.MockRedisClient{
		DelFunc: func(_ context.Context, key ...string) error {
			deletedKeys = append(deletedKeys, key...)
			return nil
		},
	}
	organizationRepo := repository.NewOrganizationRepository(redisClient)

	err := organizationRepo.UpdateByID(ctx, testutil.Organization1ID, entity.Organization{
		Name: "Joe's Barbershop",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"cache:organization:slug:joes-salon"}, deletedKeys)

	organization, err := organizationRepo.GetByID(ctx, testutil.Organization1ID)
	require.NoError(t, err)
	require.Equal(t, "Joe's Barbershop", organization.Name)
}
