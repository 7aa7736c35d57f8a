package profilefs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praveshk/stockpulse/internal/common"
	"github.com/praveshk/stockpulse/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewProfileStore(common.NewSilentLogger(), t.TempDir())
	require.NoError(t, err)
	return store
}

func TestSaveAndGetProfile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	profile := &models.CollectedProfile{
		CompanyName: "Acme Industries",
		Description: "An industrial conglomerate.",
		Quality:     models.QualityMedium,
		Sources:     []string{"Wikipedia: https://en.wikipedia.org/wiki/Acme"},
		CollectedAt: time.Now().UTC(),
	}

	require.NoError(t, store.SaveProfile(ctx, profile))

	got, err := store.GetProfile(ctx, "Acme Industries")
	require.NoError(t, err)
	assert.Equal(t, profile.Description, got.Description)
	assert.Equal(t, models.QualityMedium, got.Quality)
	assert.Len(t, got.Sources, 1)
}

func TestGetProfile_Missing(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetProfile(context.Background(), "Nobody Inc")
	assert.Error(t, err)
}

func TestSaveProfile_Replaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProfile(ctx, &models.CollectedProfile{CompanyName: "Acme", Description: "old"}))
	require.NoError(t, store.SaveProfile(ctx, &models.CollectedProfile{CompanyName: "Acme", Description: "new"}))

	got, err := store.GetProfile(ctx, "Acme")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Description)
}

func TestSaveProfile_RequiresCompanyName(t *testing.T) {
	store := newTestStore(t)
	err := store.SaveProfile(context.Background(), &models.CollectedProfile{})
	assert.Error(t, err)
}

func TestProfileKey_CaseAndSpacing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProfile(ctx, &models.CollectedProfile{CompanyName: "Acme  Industries"}))

	// Lookups normalize the same way the save path does.
	_, err := store.GetProfile(ctx, "acme industries")
	assert.NoError(t, err)
}
