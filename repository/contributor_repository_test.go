package repository

import (
	"context"
	"testing"

	"legalbridge-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticContributorRepository(t *testing.T) {
	repo := NewStaticContributorRepository(models.SeedContributors)
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(models.SeedContributors))
	assert.Equal(t, "1", list[0].ID)

	// List hands out a copy
	list[0].Name = "changed"
	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", again[0].Name)

	c, err := repo.GetByID(ctx, "6")
	require.NoError(t, err)
	assert.Equal(t, "Adv. Vikram Singh", c.Name)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
