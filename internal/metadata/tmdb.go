package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const tmdbBaseURL = "https://api.themoviedb.org/3"

// TMDBClient implements Provider against api.themoviedb.org.
type TMDBClient struct {
	apiKey   string
	language string
	client   *http.Client
}

func NewTMDBClient(apiKey, language string) *TMDBClient {
	if language == "" {
		language = "zh-CN"
	}
	return &TMDBClient{
		apiKey:   apiKey,
		language: language,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *TMDBClient) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("TMDB API key not configured")
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tmdbBaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB %s: HTTP %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type tmdbSearchResponse struct {
	Results []Result `json:"results"`
}

func (c *TMDBClient) SearchMovie(ctx context.Context, title string, year *int) ([]Result, error) {
	params := url.Values{}
	params.Set("query", title)
	if year != nil && *year > 0 {
		params.Set("year", fmt.Sprintf("%d", *year))
	}
	var resp tmdbSearchResponse
	if err := c.get(ctx, "/search/movie", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *TMDBClient) SearchTV(ctx context.Context, query string) ([]Result, error) {
	params := url.Values{}
	params.Set("query", query)
	var resp tmdbSearchResponse
	if err := c.get(ctx, "/search/tv", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *TMDBClient) MovieDetails(ctx context.Context, id int) (*Details, error) {
	var d Details
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *TMDBClient) TVDetails(ctx context.Context, id int) (*Details, error) {
	var d Details
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", id), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
