package pokeapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokedex-admin/internal/config"
	"pokedex-admin/internal/shared/cache"
)

const listingBody = `{"count":1302,"next":null,"previous":null,"results":[
	{"name":"bulbasaur","url":"https://pokeapi.co/api/v2/pokemon/1/"},
	{"name":"pikachu","url":"https://pokeapi.co/api/v2/pokemon/25/"}
]}`

func newServer(t *testing.T, hits *int32, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		assert.Equal(t, "/pokemon", r.URL.Path)
		assert.Equal(t, "650", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(listingBody))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ListPokemon(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits, http.StatusOK)

	c := NewClient(config.PokeAPIConfig{BaseURL: srv.URL + "/", Timeout: time.Second})
	assert.Equal(t, srv.URL, c.BaseURL())

	resp, err := c.ListPokemon(context.Background(), 650)
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "pikachu", resp.Results[1].Name)
	assert.Equal(t, 1302, resp.Count)
	assert.False(t, resp.Cached)
	assert.JSONEq(t, listingBody, string(resp.Raw))
	assert.Equal(t, int32(1), hits)
}

func TestClient_ListPokemon_Status(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits, http.StatusServiceUnavailable)

	c := NewClient(config.PokeAPIConfig{BaseURL: srv.URL})
	_, err := c.ListPokemon(context.Background(), 650)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
}

func TestClient_ListPokemon_Cache(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits, http.StatusOK)

	mc := cache.NewMemoryCache()
	c := NewClient(config.PokeAPIConfig{BaseURL: srv.URL}, WithCache(mc, time.Hour))
	ctx := context.Background()

	first, err := c.ListPokemon(ctx, 650)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := c.ListPokemon(ctx, 650)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Results, second.Results)
	assert.Equal(t, int32(1), hits)
}

func TestClient_ListPokemon_CorruptCacheRefetches(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits, http.StatusOK)

	mc := cache.NewMemoryCache()
	ctx := context.Background()
	require.NoError(t, mc.SetListing(ctx, cache.ListingKey(srv.URL, 650), []byte("{not json"), time.Hour))

	c := NewClient(config.PokeAPIConfig{BaseURL: srv.URL}, WithCache(mc, time.Hour))
	resp, err := c.ListPokemon(ctx, 650)
	require.NoError(t, err)
	assert.False(t, resp.Cached)
	assert.Equal(t, int32(1), hits)
}

func TestClient_ListPokemon_ContextCanceled(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits, http.StatusOK)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(config.PokeAPIConfig{BaseURL: srv.URL}).ListPokemon(ctx, 650)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNumberFromURL(t *testing.T) {
	tests := []struct {
		url     string
		want    int
		wantErr bool
	}{
		{"https://pokeapi.co/api/v2/pokemon/25/", 25, false},
		{"https://pokeapi.co/api/v2/pokemon/1/", 1, false},
		{"/pokemon/151/", 151, false},
		{"https://pokeapi.co/api/v2/pokemon/25", 0, true},
		{"https://pokeapi.co/api/v2/pokemon/abc/", 0, true},
		{"25", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := NumberFromURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
