package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipeServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)

		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		switch {
		case q.Get("meal_type") == "lunch" && q.Get("diet_type") == "vegan":
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"message": "ok",
				"data": []map[string]any{
					{"id": "salad", "meal_types": []string{"Lunch"}, "diet_types": []string{"vegan"}, "calories": 350},
					{"id": "wrap", "meal_types": []string{"lunch", "dinner"}, "diet_types": []string{"VEGAN"}, "calories": 500},
					{"id": "stray", "meal_types": []string{"breakfast"}, "diet_types": []string{"vegan"}, "calories": 200},
					{"id": "odd", "meal_types": []string{"brunch"}, "diet_types": []string{"vegan"}, "calories": 100},
				},
			})
		case q.Get("meal_type") == "dinner":
			json.NewEncoder(w).Encode(map[string]any{"message": "ok", "data": []any{}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestHTTPProvider_FindRandom(t *testing.T) {
	var hits int32
	srv := recipeServer(t, &hits)
	defer srv.Close()

	hp := NewHTTPProvider(srv.URL, "secret", time.Second)
	rng := rand.New(rand.NewSource(1))

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		r, err := hp.FindRandom(context.Background(), Lunch, "vegan", rng)
		require.NoError(t, err)
		assert.True(t, r.Serves(Lunch))
		seen[r.ID] = true
	}

	assert.Equal(t, map[string]bool{"salad": true, "wrap": true}, seen)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "candidates are cached per bucket")
}

func TestHTTPProvider_NotFound(t *testing.T) {
	var hits int32
	srv := recipeServer(t, &hits)
	defer srv.Close()

	hp := NewHTTPProvider(srv.URL, "secret", time.Second)
	rng := rand.New(rand.NewSource(1))

	_, err := hp.FindRandom(context.Background(), Breakfast, "vegan", rng)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = hp.FindRandom(context.Background(), Dinner, "vegan", rng)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestHTTPProvider_ServerError(t *testing.T) {
	var hits int32
	srv := recipeServer(t, &hits)
	defer srv.Close()

	hp := NewHTTPProvider(srv.URL, "wrong", time.Second)
	_, err := hp.FindRandom(context.Background(), Lunch, "vegan", rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "401")
}

func TestHTTPProvider_Cancelled(t *testing.T) {
	var hits int32
	srv := recipeServer(t, &hits)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hp := NewHTTPProvider(srv.URL, "secret", time.Second)
	_, err := hp.FindRandom(ctx, Lunch, "vegan", rand.New(rand.NewSource(1)))
	assert.True(t, errors.Is(err, context.Canceled))
}
