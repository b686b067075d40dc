package recipes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/recipedia/internal/mealdb"
	"github.com/alexisbeaulieu97/recipedia/internal/mealdb/mealdbtest"
	"github.com/alexisbeaulieu97/recipedia/internal/query"
	"github.com/alexisbeaulieu97/recipedia/internal/recent"
	"github.com/alexisbeaulieu97/recipedia/internal/storage"
	"github.com/alexisbeaulieu97/recipedia/internal/storage/storagetest"
)

func newService(t *testing.T, api mealdb.API) *Service {
	t.Helper()
	return NewService(Deps{
		API:   api,
		Cache: query.New(query.Options{Retries: -1}),
		Store: storage.Open(storage.NewMemoryBackend(), nil),
		Now:   func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) },
	})
}

func fixtures() *mealdbtest.Fake {
	return mealdbtest.New(
		mealdbtest.Recipe("52772", "Teriyaki Chicken Casserole", "Chicken"),
		mealdbtest.Recipe("52795", "Chicken Handi", "Chicken"),
		mealdbtest.Recipe("52796", "Chicken Alfredo", "Chicken"),
		mealdbtest.Recipe("52982", "Spaghetti alla Carbonara", "Pasta"),
		mealdbtest.Recipe("52806", "Tandoori chicken", "Chicken"),
	)
}

func TestSearchEnabled(t *testing.T) {
	assert.False(t, SearchEnabled(""))
	assert.False(t, SearchEnabled("c"))
	assert.False(t, SearchEnabled("ch"))
	assert.False(t, SearchEnabled("  ch  "))
	assert.True(t, SearchEnabled("chi"))
	assert.True(t, SearchEnabled(" chicken "))
}

func TestShortSearchNeverCallsAPI(t *testing.T) {
	api := fixtures()
	svc := newService(t, api)

	for _, term := range []string{"", "c", "ch", " ch "} {
		got, err := svc.Search(context.Background(), term)
		require.NoError(t, err)
		assert.Empty(t, got)
	}

	assert.Zero(t, api.Calls("search"))
}

func TestSearchIsCached(t *testing.T) {
	api := fixtures()
	svc := newService(t, api)

	first, err := svc.Search(context.Background(), "chicken")
	require.NoError(t, err)
	assert.Len(t, first, 4)

	_, err = svc.Search(context.Background(), "chicken")
	require.NoError(t, err)
	assert.Equal(t, 1, api.Calls("search"))

	svc.InvalidateSearches()
	_, err = svc.Search(context.Background(), "chicken")
	require.NoError(t, err)
	assert.Equal(t, 2, api.Calls("search"))
}

func TestSearchKeyIgnoresCaseAndSpace(t *testing.T) {
	api := fixtures()
	svc := newService(t, api)

	for _, term := range []string{"Chicken", "chicken", "  CHICKEN "} {
		got, err := svc.Search(context.Background(), term)
		require.NoError(t, err)
		assert.Len(t, got, 4)
	}
	assert.Equal(t, 1, api.Calls("search"))
}

func TestRecipeRecordsView(t *testing.T) {
	svc := newService(t, fixtures())

	got, err := svc.Recipe(context.Background(), "52772")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, []recent.Entry{{
		ID:    "52772",
		Name:  "Teriyaki Chicken Casserole",
		Image: "https://img.test/52772.jpg",
	}}, svc.Recent())
}

func TestUnknownRecipeIsNotFound(t *testing.T) {
	svc := newService(t, fixtures())

	got, err := svc.Recipe(context.Background(), "999999")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, svc.Recent())
}

func TestRecipeErrorPropagates(t *testing.T) {
	api := fixtures()
	api.SetErr(errors.New("offline"))
	svc := newService(t, api)

	_, err := svc.Recipe(context.Background(), "52772")
	require.Error(t, err)
	assert.Empty(t, svc.Recent())
}

func TestRandomDefaultsToNine(t *testing.T) {
	api := fixtures()
	svc := newService(t, api)

	got, err := svc.Random(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, got, 5)

	_, err = svc.Random(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, api.Calls("random_unique"))
}

func TestFavoritesRoundTrip(t *testing.T) {
	api := fixtures()
	svc := newService(t, api)

	empty, err := svc.Favorites(context.Background())
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.Zero(t, api.Calls("lookup_many"))

	assert.True(t, svc.ToggleFavorite(context.Background(), "52795"))
	assert.True(t, svc.IsFavorite("52795"))

	got, err := svc.Favorites(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Chicken Handi", got[0].Name)

	assert.False(t, svc.ToggleFavorite(context.Background(), "52795"))
	assert.False(t, svc.IsFavorite("52795"))
	assert.Empty(t, svc.FavoriteIDs())
}

func TestRelatedSkipsWithoutCategory(t *testing.T) {
	api := fixtures()
	svc := newService(t, api)

	got, err := svc.Related(context.Background(), "", "52772")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, api.Calls("related"))

	got, err = svc.Related(context.Background(), "Chicken", "52772")
	require.NoError(t, err)
	assert.Len(t, got, 3)
	for _, r := range got {
		assert.NotEqual(t, "52772", r.ID)
	}
}

func TestPopular(t *testing.T) {
	svc := newService(t, fixtures())

	got, err := svc.Popular(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestServiceSurvivesFailingStore(t *testing.T) {
	backend := &storagetest.FailingBackend{}
	svc := NewService(Deps{API: fixtures(), Store: storage.Open(backend, nil)})

	assert.True(t, svc.Storage().Fallback())
	assert.False(t, svc.IsFavorite("52772"))
	assert.True(t, svc.ToggleFavorite(context.Background(), "52772"))

	_, err := svc.Recipe(context.Background(), "52772")
	require.NoError(t, err)
	assert.Len(t, svc.Recent(), 1)
}

func TestResetClearsState(t *testing.T) {
	svc := newService(t, fixtures())
	svc.ToggleFavorite(context.Background(), "52772")
	_, _ = svc.Recipe(context.Background(), "52772")
	require.NotZero(t, svc.CacheStats().Total)

	svc.Reset(context.Background())

	assert.Empty(t, svc.FavoriteIDs())
	assert.Empty(t, svc.Recent())
	assert.Zero(t, svc.CacheStats().Total)
}

func TestRandomKeyRollsHourly(t *testing.T) {
	api := fixtures()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	a := RandomQuery(api, 9, at)
	b := RandomQuery(api, 9, at.Add(59*time.Minute))
	c := RandomQuery(api, 9, at.Add(time.Hour))

	assert.Equal(t, a.Key, b.Key)
	assert.NotEqual(t, a.Key, c.Key)
	assert.Equal(t, 15*time.Minute, a.StaleTime)
	assert.Equal(t, 30*time.Minute, a.GCTime)
}
