package persistence

import (
	"context"
	"testing"

	"github.com/mrtoldo/backend/internal/domain/identity"
	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUserRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)

	user, err := identity.NewUser("Admin", "Admin@MRTOLDO.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, user))
	require.NotZero(t, user.ID)

	t.Run("find by email ignores case", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "ADMIN@mrtoldo.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.True(t, found.CheckPassword("secret123"))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "nobody@mrtoldo.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("password change is persisted", func(t *testing.T) {
		require.NoError(t, user.SetPassword("another-secret"))
		require.NoError(t, repo.Save(ctx, user))

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, found.CheckPassword("another-secret"))
		assert.False(t, found.CheckPassword("secret123"))
	})
}
