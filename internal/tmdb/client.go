// Package tmdb is a read-only client for the external movie catalog API.
// It holds no state beyond the HTTP client itself; every method is a single
// request/response round-trip.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrUpstream is returned when the catalog API answers with a non-2xx status.
var ErrUpstream = errors.New("catalog request failed")

// Client talks to the movie catalog API using a bearer token.
type Client struct {
	http      *resty.Client
	imageBase string
}

// NewClient creates a catalog client for the given API base URL, image CDN
// base URL and bearer token.
func NewClient(apiBase, imageBase, token string) *Client {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(apiBase, "/")).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	return &Client{
		http:      cli,
		imageBase: strings.TrimRight(imageBase, "/"),
	}
}

// PopularMovies returns the first page of currently popular movies.
func (c *Client) PopularMovies(ctx context.Context) (MovieList, error) {
	var out MovieList
	err := c.get(ctx, "/movie/popular", nil, &out)
	return out, err
}

// MovieDetails returns a movie with its cast credits appended.
func (c *Client) MovieDetails(ctx context.Context, id int64) (MovieDetails, error) {
	var out MovieDetails
	err := c.get(ctx, fmt.Sprintf("/movie/%d", id), map[string]string{"append_to_response": "credits"}, &out)
	return out, err
}

// PersonDetails returns a person with their movie credits appended.
func (c *Client) PersonDetails(ctx context.Context, id int64) (Person, error) {
	var out Person
	err := c.get(ctx, fmt.Sprintf("/person/%d", id), map[string]string{"append_to_response": "movie_credits"}, &out)
	return out, err
}

// SearchMovies returns movies matching the free-text query.
func (c *Client) SearchMovies(ctx context.Context, query string) (MovieList, error) {
	var out MovieList
	err := c.get(ctx, "/search/movie", map[string]string{"query": query}, &out)
	return out, err
}

// Reviews returns the first page of reviews for a movie.
func (c *Client) Reviews(ctx context.Context, id int64) (ReviewList, error) {
	var out ReviewList
	err := c.get(ctx, fmt.Sprintf("/movie/%d/reviews", id), nil, &out)
	return out, err
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, result any) error {
	req := c.http.R().SetContext(ctx).SetResult(result)
	if params != nil {
		req.SetQueryParams(params)
	}

	resp, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("catalog request %s: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: %s returned %s", ErrUpstream, path, resp.Status())
	}
	return nil
}

// PosterURL builds the CDN URL for a poster image path, or "" when the movie
// has no poster.
func (c *Client) PosterURL(path string) string {
	return c.imageURL("w500", path)
}

// BackdropURL builds the CDN URL for a full-size backdrop image path.
func (c *Client) BackdropURL(path string) string {
	return c.imageURL("original", path)
}

// ProfileURL builds the CDN URL for a person's profile image path.
func (c *Client) ProfileURL(path string) string {
	return c.imageURL("w185", path)
}

func (c *Client) imageURL(size, path string) string {
	if path == "" {
		return ""
	}
	return c.imageBase + "/" + size + path
}
