package repositories

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagenctl/internal/database"
	"imagenctl/internal/models"
)

func newTestRepo(t *testing.T) GenerationRepository {
	t.Helper()
	db, err := database.Init(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	})
	return NewGenerationRepository(db)
}

func TestGenerationRepositoryRecentOrdersNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		generation := &models.Generation{
			RequestID: fmt.Sprintf("req-%d", i),
			Prompt:    fmt.Sprintf("prompt %d", i),
			Model:     "imagen-test",
			ProjectID: "proj",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, generation))
	}

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "prompt 2", recent[0].Prompt)
	assert.Equal(t, "prompt 1", recent[1].Prompt)
}

func TestGenerationRepositoryRecentDefaultLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		require.NoError(t, repo.Create(ctx, &models.Generation{
			RequestID: fmt.Sprintf("req-%d", i),
			Prompt:    "p",
			Model:     "m",
			ProjectID: "proj",
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}))
	}

	recent, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 10)
}

func TestGenerationRepositoryRecentEmpty(t *testing.T) {
	repo := newTestRepo(t)

	recent, err := repo.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
