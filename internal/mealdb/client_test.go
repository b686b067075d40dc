package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	apperrors "github.com/alexisbeaulieu97/recipedia/pkg/errors"
)

// handlerClient serves requests in-process so tests open no sockets.
type handlerClient struct {
	handler http.Handler
	calls   atomic.Int64
}

func (h *handlerClient) Do(req *http.Request) (*http.Response, error) {
	h.calls.Add(1)
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec.Result(), nil
}

type errClient struct{ err error }

func (e errClient) Do(*http.Request) (*http.Response, error) { return nil, e.err }

func wire(id, name, category string) map[string]any {
	return map[string]any{
		"idMeal":          id,
		"strMeal":         name,
		"strCategory":     category,
		"strArea":         "British",
		"strInstructions": "Cook it.",
		"strMealThumb":    "https://img/" + id + ".jpg",
	}
}

func writeMeals(w http.ResponseWriter, meals ...map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	if len(meals) == 0 {
		_, _ = w.Write([]byte(`{"meals":null}`))
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"meals": meals})
}

func newTestClient(h http.HandlerFunc) (*Client, *handlerClient) {
	hc := &handlerClient{handler: h}
	return NewClient(ClientOpts{BaseURL: "http://mealdb.test/api/", HTTPClient: hc}), hc
}

func TestNormalizeCompactsIngredients(t *testing.T) {
	m := wire("1", "Pie", "Beef")
	m["strIngredient1"] = "Beef"
	m["strMeasure1"] = "500g"
	m["strIngredient2"] = ""
	m["strMeasure2"] = ""
	m["strIngredient3"] = nil
	m["strIngredient4"] = " Onion "
	m["strMeasure4"] = nil
	m["strIngredient20"] = "Salt"
	m["strMeasure20"] = "pinch"
	m["strTags"] = "Pie, Comfort ,,Winter"
	m["strYoutube"] = "https://youtube.test/pie"
	m["strSource"] = ""

	got := normalize(m)

	want := Recipe{
		ID:           "1",
		Name:         "Pie",
		Category:     "Beef",
		Area:         "British",
		Instructions: "Cook it.",
		Image:        "https://img/1.jpg",
		Ingredients:  []string{"Beef", "Onion", "Salt"},
		Measures:     []string{"500g", "", "pinch"},
		Tags:         []string{"Pie", "Comfort", "Winter"},
		YouTube:      "https://youtube.test/pie",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "pinch", got.Measure(2))
	assert.Equal(t, "", got.Measure(9))
}

func TestNormalizeWithoutIngredients(t *testing.T) {
	got := normalize(wire("2", "Water", "Misc"))

	assert.NotNil(t, got.Ingredients)
	assert.Empty(t, got.Ingredients)
	assert.Nil(t, got.Measures)
	assert.Nil(t, got.Tags)
}

func TestSearchByName(t *testing.T) {
	client, _ := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search.php", r.URL.Path)
		assert.Equal(t, "chicken curry", r.URL.Query().Get("s"))
		writeMeals(w, wire("10", "Chicken Curry", "Chicken"))
	})

	got, err := client.SearchByName(context.Background(), "chicken curry")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Chicken Curry", got[0].Name)
}

func TestSearchNoMatchesIsEmpty(t *testing.T) {
	client, _ := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		writeMeals(w)
	})

	got, err := client.SearchByName(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNonOKStatusFails(t *testing.T) {
	client, _ := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.SearchByName(context.Background(), "pie")
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.StatusCode(err))
	assert.Contains(t, err.Error(), "HTTP error! status: 503")
}

func TestTransportErrorPropagates(t *testing.T) {
	boom := fmt.Errorf("connection refused")
	client := NewClient(ClientOpts{HTTPClient: errClient{err: boom}})

	_, err := client.Random(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestLookupByIDMissingReturnsNil(t *testing.T) {
	client, _ := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/lookup.php", r.URL.Path)
		writeMeals(w)
	})

	got, err := client.LookupByID(context.Background(), "999999")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLookupManyDropsMissingAndKeepsOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	client, hc := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("i")
		if id == "missing" {
			writeMeals(w)
			return
		}
		writeMeals(w, wire(id, "Meal "+id, "Beef"))
	})

	got, err := client.LookupMany(context.Background(), []string{"3", "missing", "1", "2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1", "2"}, ids(got))
	assert.EqualValues(t, 4, hc.calls.Load())
}

func TestLookupManyFailsWhenAnyLookupFails(t *testing.T) {
	defer goleak.VerifyNone(t)

	client, _ := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("i") == "bad" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeMeals(w, wire(r.URL.Query().Get("i"), "ok", "Beef"))
	})

	_, err := client.LookupMany(context.Background(), []string{"1", "bad", "2"})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(err))
}

func TestFetchMostPopularUsesFixedIDs(t *testing.T) {
	var mu sync.Mutex
	var requested []string
	client, _ := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("i")
		mu.Lock()
		requested = append(requested, id)
		mu.Unlock()
		writeMeals(w, wire(id, "Popular "+id, "Beef"))
	})

	got, err := client.FetchMostPopular(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MostPopularIDs, ids(got))

	sort.Strings(requested)
	want := append([]string(nil), MostPopularIDs...)
	sort.Strings(want)
	assert.Equal(t, want, requested)
}

func TestFetchRandomUniqueDeduplicates(t *testing.T) {
	defer goleak.VerifyNone(t)

	var n atomic.Int64
	client, _ := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		// Cycles through five distinct meals.
		id := fmt.Sprintf("%d", n.Add(1)%5)
		writeMeals(w, wire(id, "Random "+id, "Misc"))
	})

	got, err := client.FetchRandomUnique(context.Background(), 9)
	require.NoError(t, err)
	assert.Len(t, got, 5)

	seen := map[string]bool{}
	for _, r := range got {
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
}

func TestFetchRandomUniqueReturnsAtMostCount(t *testing.T) {
	var n atomic.Int64
	client, hc := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		id := fmt.Sprintf("%d", n.Add(1))
		writeMeals(w, wire(id, "Random "+id, "Misc"))
	})

	got, err := client.FetchRandomUnique(context.Background(), 9)
	require.NoError(t, err)
	assert.Len(t, got, 9)
	// 9 + 3 overfetch is capped to one batch of 9.
	assert.EqualValues(t, 9, hc.calls.Load())
}

func TestFetchRandomUniqueFailsOnError(t *testing.T) {
	client, _ := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchRandomUnique(context.Background(), 3)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperrors.StatusCode(err))
}

func TestFetchRelatedExcludesCurrentAndCaps(t *testing.T) {
	client, _ := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/filter.php":
			assert.Equal(t, "Beef", r.URL.Query().Get("c"))
			_, _ = w.Write([]byte(`{"meals":[
				{"idMeal":"1","strMeal":"A","strMealThumb":"a"},
				{"idMeal":"2","strMeal":"B","strMealThumb":"b"},
				{"idMeal":"3","strMeal":"C","strMealThumb":"c"},
				{"idMeal":"4","strMeal":"D","strMealThumb":"d"},
				{"idMeal":"5","strMeal":"E","strMealThumb":"e"}
			]}`))
		case "/api/lookup.php":
			id := r.URL.Query().Get("i")
			writeMeals(w, wire(id, "Meal "+id, "Beef"))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	for range 20 {
		got, err := client.FetchRelated(context.Background(), "Beef", "3")
		require.NoError(t, err)
		assert.Len(t, got, RelatedLimit)
		assert.NotContains(t, ids(got), "3")
	}
}

func TestFetchRelatedEmptyCategory(t *testing.T) {
	client, hc := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meals":null}`))
	})

	got, err := client.FetchRelated(context.Background(), "Nothing", "1")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.EqualValues(t, 1, hc.calls.Load())
}

func TestClientAgainstHTTPServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMeals(w, wire("52772", "Teriyaki Chicken Casserole", "Chicken"))
	}))
	defer srv.Close()

	client := NewClient(ClientOpts{BaseURL: srv.URL, HTTPClient: srv.Client()})
	got, err := client.Random(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "52772", got.ID)
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(ClientOpts{})
	assert.Equal(t, DefaultBaseURL, client.BaseURL())
	assert.Equal(t, DefaultRandomPolicy, client.random)
}

func ids(recipes []Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.ID)
	}
	return out
}
