package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	mhttp "github.com/tvrenamer/tvrenamer/pkg/http"
)

// RequestEditorFn mutates a request before it is sent.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// SetRequestAPIKey adds the bearer token and accept header each request needs.
func SetRequestAPIKey(apiKey string) RequestEditorFn {
	return func(ctx context.Context, req *http.Request) error {
		req.Header.Add("Authorization", "Bearer "+apiKey)
		req.Header.Add("accept", "application/json")
		return nil
	}
}

// ClientInterface is the subset of the TMDB API the rename pipeline consumes.
type ClientInterface interface {
	SearchTV(ctx context.Context, query string) (*SearchTVResponse, error)
	SeriesDetails(ctx context.Context, seriesID int) (*SeriesDetails, error)
	SeasonDetails(ctx context.Context, seriesID, seasonNumber int) (*SeasonDetails, error)
	EpisodeDetails(ctx context.Context, seriesID, seasonNumber, episodeNumber int) (*EpisodeDetails, error)
}

// SearchTVResponse is one page of tv search results, most relevant first.
type SearchTVResponse struct {
	Page         *int        `json:"page,omitempty"`
	TotalPages   *int        `json:"total_pages,omitempty"`
	TotalResults *int        `json:"total_results,omitempty"`
	Results      []*TVResult `json:"results,omitempty"`
}

type TVResult struct {
	ID           *int     `json:"id,omitempty"`
	Name         *string  `json:"name,omitempty"`
	OriginalName *string  `json:"original_name,omitempty"`
	FirstAirDate *string  `json:"first_air_date,omitempty"`
	Overview     *string  `json:"overview,omitempty"`
	Popularity   *float32 `json:"popularity,omitempty"`
}

type SeriesDetails struct {
	ID              *int    `json:"id,omitempty"`
	Name            *string `json:"name,omitempty"`
	OriginalName    *string `json:"original_name,omitempty"`
	FirstAirDate    *string `json:"first_air_date,omitempty"`
	Overview        *string `json:"overview,omitempty"`
	NumberOfSeasons *int    `json:"number_of_seasons,omitempty"`
}

type SeasonDetails struct {
	ID           *int              `json:"id,omitempty"`
	Name         *string           `json:"name,omitempty"`
	SeasonNumber *int              `json:"season_number,omitempty"`
	Episodes     []*EpisodeDetails `json:"episodes,omitempty"`
}

type EpisodeDetails struct {
	Name          *string `json:"name,omitempty"`
	AirDate       *string `json:"air_date,omitempty"`
	EpisodeNumber *int    `json:"episode_number,omitempty"`
	SeasonNumber  *int    `json:"season_number,omitempty"`
	Overview      *string `json:"overview,omitempty"`
}

var _ ClientInterface = (*Client)(nil)

// Client talks to the TMDB v3 REST API.
type Client struct {
	baseURL       string
	client        mhttp.HTTPClient
	requestEditor RequestEditorFn
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient sets the http client used for requests
func WithHTTPClient(client mhttp.HTTPClient) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// New creates a TMDB client for the given base uri and api key
func New(uri, apiKey string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse tmdb uri: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("tmdb uri must include scheme and host")
	}

	c := &Client{
		baseURL:       strings.TrimRight(uri, "/"),
		client:        http.DefaultClient,
		requestEditor: SetRequestAPIKey(apiKey),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) SearchTV(ctx context.Context, query string) (*SearchTVResponse, error) {
	if query == "" {
		return nil, errors.New("query is empty")
	}

	q := url.Values{}
	q.Set("query", query)

	out := &SearchTVResponse{}
	if err := c.get(ctx, "/3/search/tv", q, out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) SeriesDetails(ctx context.Context, seriesID int) (*SeriesDetails, error) {
	out := &SeriesDetails{}
	if err := c.get(ctx, fmt.Sprintf("/3/tv/%d", seriesID), nil, out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) SeasonDetails(ctx context.Context, seriesID, seasonNumber int) (*SeasonDetails, error) {
	out := &SeasonDetails{}
	if err := c.get(ctx, fmt.Sprintf("/3/tv/%d/season/%d", seriesID, seasonNumber), nil, out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) EpisodeDetails(ctx context.Context, seriesID, seasonNumber, episodeNumber int) (*EpisodeDetails, error) {
	out := &EpisodeDetails{}
	if err := c.get(ctx, fmt.Sprintf("/3/tv/%d/season/%d/episode/%d", seriesID, seasonNumber, episodeNumber), nil, out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	if c.requestEditor != nil {
		if err := c.requestEditor(ctx, req); err != nil {
			return err
		}
	}

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb: unexpected status %s for %s", res.Status, path)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
