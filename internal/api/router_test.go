package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinesky/cinesky-be/internal/api"
	"github.com/cinesky/cinesky-be/internal/auth"
	"github.com/cinesky/cinesky-be/internal/database"
	"github.com/cinesky/cinesky-be/internal/models"
	"github.com/cinesky/cinesky-be/internal/services"
	"github.com/cinesky/cinesky-be/internal/tmdb"
)

type testEnv struct {
	server *httptest.Server
	client *http.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })

	// Fake upstream catalog.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/movie/popular":
			fmt.Fprint(w, `{"page":1,"results":[{"id":27205,"title":"Inception","vote_average":8.4}],"total_pages":1,"total_results":1}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"status_message":"not found"}`)
		}
	}))
	t.Cleanup(upstream.Close)

	sessions := auth.NewSessions("test-secret", false)
	router := api.NewRouter(
		"http://localhost:5173",
		sessions,
		services.NewUserService(db),
		services.NewFavoriteService(db),
		tmdb.NewClient(upstream.URL, "https://image.example/t/p", "token"),
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{server: server, client: &http.Client{Jar: jar}}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}
	req, err := http.NewRequest(method, e.server.URL+path, &reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func (e *testEnv) listFavorites(t *testing.T) (*http.Response, []models.Favorite) {
	t.Helper()

	resp, err := e.client.Get(e.server.URL + "/favorites/")
	require.NoError(t, err)
	defer resp.Body.Close()

	var favorites []models.Favorite
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&favorites))
	}
	return resp, favorites
}

func TestSignupLoginFavoritesFlow(t *testing.T) {
	env := newTestEnv(t)

	// Signup
	resp, body := env.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"name": "Ann", "email": "ann@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, body["userId"])

	// Duplicate signup
	resp, body = env.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"name": "Ann", "email": "ann@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already registered", body["message"])

	// Wrong password and unknown email get the same answer
	resp, badPw := env.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "ann@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, unknown := env.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "nobody@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, badPw["message"], unknown["message"])

	// Login sets the session cookie
	resp, body = env.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "ann@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ann", body["name"])
	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.HttpOnly)

	// Add a favorite
	resp, body = env.do(t, http.MethodPost, "/favorites/", map[string]any{
		"movieId": 27205, "title": "Inception", "poster_path": "/inception.jpg", "vote_average": 8.4,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(27205), body["movieId"])

	// Adding it again is rejected
	resp, body = env.do(t, http.MethodPost, "/favorites/", map[string]any{
		"movieId": 27205, "title": "Inception",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Movie already in favorites", body["message"])

	resp, favorites := env.listFavorites(t)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Inception", favorites[0].Title)

	// Remove it
	resp, _ = env.do(t, http.MethodDelete, "/favorites/27205", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body = env.do(t, http.MethodDelete, "/favorites/27205", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Favorite not found", body["message"])

	resp, favorites = env.listFavorites(t)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, favorites)
}

func TestFavoritesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.listFavorites(t)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPost, "/favorites/", map[string]any{"movieId": 1, "title": "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, "/favorites/1", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, "/auth/account", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []map[string]string{
		{"email": "ann@x.com", "password": "secret1"},
		{"name": "Ann", "password": "secret1"},
		{"name": "Ann", "email": "ann@x.com"},
	}
	for _, payload := range tests {
		resp, body := env.do(t, http.MethodPost, "/auth/signup", payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Missing required fields", body["message"])
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)

	// Logout succeeds even without a session.
	resp, body := env.do(t, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "User logged out successfully", body["message"])
}

func TestDeleteAccountCascades(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"name": "Ann", "email": "ann@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = env.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "ann@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for i := 0; i < 3; i++ {
		resp, _ = env.do(t, http.MethodPost, "/favorites/", map[string]any{
			"movieId": 100 + i, "title": fmt.Sprintf("Movie %d", i),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := env.do(t, http.MethodDelete, "/auth/account", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Account deleted successfully", body["message"])

	// The account is gone, so the login that would show leftover favorites
	// fails.
	resp, _ = env.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "ann@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMoviesProxy(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.client.Get(env.server.URL + "/movies/popular")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list tmdb.MovieList
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Results, 1)
	assert.Equal(t, "Inception", list.Results[0].Title)

	// Upstream failures surface as a gateway error, not a 500.
	resp, err = env.client.Get(env.server.URL + "/movies/99999")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	// Missing query is a client error.
	resp, err = env.client.Get(env.server.URL + "/movies/search")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
