package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnector/backend/internal/models"
	"github.com/devconnector/backend/internal/service"
	"github.com/devconnector/backend/internal/testhelpers"
	"github.com/devconnector/backend/internal/types"
)

// TestConcurrentUpsertsSingleProfile drives the upsert path from many
// goroutines against real postgres. The unique index on profiles.user_id
// plus ON CONFLICT must collapse the race to exactly one row.
func TestConcurrentUpsertsSingleProfile(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	ctx := context.Background()

	authSvc := service.NewAuthService(db, "integration-secret", time.Hour)
	profileSvc := service.NewProfileService(db)

	_, err := authSvc.Register(ctx, "Jane", "jane@example.com", "password123")
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&user).Error)

	const writers = 10
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := fmt.Sprintf("Developer %d", i)
			_, err := profileSvc.Upsert(ctx, user.ID, &types.UpsertProfileRequest{
				Status: status,
				Skills: "go,postgres",
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	profile, err := profileSvc.GetByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Contains(t, profile.Status, "Developer")
}

// TestDuplicateEmailConstraint exercises the users.email unique index at
// the database rather than trusting the service's pre-check.
func TestDuplicateEmailConstraint(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	ctx := context.Background()

	authSvc := service.NewAuthService(db, "integration-secret", time.Hour)

	_, err := authSvc.Register(ctx, "Jane", "jane@example.com", "password123")
	require.NoError(t, err)

	_, err = authSvc.Register(ctx, "Other Jane", "jane@example.com", "password456")
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// TestCascadeDeletePostgres verifies the delete order holds under the
// real foreign-key-free schema: posts, then profile, then user.
func TestCascadeDeletePostgres(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)
	ctx := context.Background()

	authSvc := service.NewAuthService(db, "integration-secret", time.Hour)
	profileSvc := service.NewProfileService(db)
	postSvc := service.NewPostService(db)

	_, err := authSvc.Register(ctx, "Jane", "jane@example.com", "password123")
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&user).Error)

	_, err = profileSvc.Upsert(ctx, user.ID, &types.UpsertProfileRequest{
		Status: "Developer",
		Skills: "go",
	})
	require.NoError(t, err)
	_, err = postSvc.Create(ctx, user.ID, "first")
	require.NoError(t, err)
	_, err = postSvc.Create(ctx, user.ID, "second")
	require.NoError(t, err)

	require.NoError(t, profileSvc.DeleteAccount(ctx, user.ID))

	for _, model := range []interface{}{&models.Post{}, &models.Profile{}, &models.User{}} {
		var count int64
		require.NoError(t, db.Unscoped().Model(model).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	}
}
