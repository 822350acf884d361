// Package catalog is the HTTP client for the music catalog provider. The
// provider speaks ytmusicapi-shaped JSON: a search-by-filter endpoint and a
// get-metadata-by-id endpoint.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"ytmlite/internal/core"
)

// Filter narrows a catalog search to one result type.
type Filter string

const (
	// FilterSongs restricts a search to song results
	FilterSongs Filter = "songs"
	// FilterVideos restricts a search to video results
	FilterVideos Filter = "videos"
	// FilterNone runs an unfiltered search mixing songs and videos
	FilterNone Filter = ""
)

// Person is a named entity attached to a record, an artist or a channel.
type Person struct {
	Name string `json:"name"`
}

// Record is one raw provider search record. All fields are optional; the
// normalizer applies fallbacks, this package never does.
type Record struct {
	VideoID    string   `json:"videoId"`
	ResultType string   `json:"resultType"`
	Title      string   `json:"title"`
	Artists    []Person `json:"artists"`
	Channel    []Person `json:"channel"`
}

// SongMetadata is the per-track metadata subset the track assembler needs.
type SongMetadata struct {
	Title     string
	Artist    string
	Thumbnail string
}

type songResponse struct {
	VideoDetails struct {
		Title     string `json:"title"`
		Author    string `json:"author"`
		Thumbnail struct {
			Thumbnails []struct {
				URL    string `json:"url"`
				Width  int    `json:"width"`
				Height int    `json:"height"`
			} `json:"thumbnails"`
		} `json:"thumbnail"`
	} `json:"videoDetails"`
}

// Client talks to the catalog provider.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a catalog client from config.
func NewClient(config *core.CatalogConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: config.BaseURL,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}
}

// Search runs one catalog query and returns the raw records in provider
// order, capped at limit.
func (c *Client) Search(ctx context.Context, query string, filter Filter, limit int) ([]Record, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	if filter != FilterNone {
		params.Set("filter", string(filter))
	}

	reqURL := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog search request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog search returned status %d", resp.StatusCode)
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode catalog search response: %w", err)
	}

	if len(records) > limit {
		records = records[:limit]
	}

	return records, nil
}

// GetSong fetches the metadata for one track. The thumbnail is the last
// entry of the provider's thumbnail list, which is its highest resolution.
func (c *Client) GetSong(ctx context.Context, trackID string) (*SongMetadata, error) {
	reqURL := c.baseURL + "/songs/" + url.PathEscape(trackID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog metadata request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog metadata returned status %d", resp.StatusCode)
	}

	var song songResponse
	if err := json.NewDecoder(resp.Body).Decode(&song); err != nil {
		return nil, fmt.Errorf("failed to decode catalog metadata response: %w", err)
	}

	meta := &SongMetadata{
		Title:  song.VideoDetails.Title,
		Artist: song.VideoDetails.Author,
	}
	if thumbs := song.VideoDetails.Thumbnail.Thumbnails; len(thumbs) > 0 {
		meta.Thumbnail = thumbs[len(thumbs)-1].URL
	}

	c.logger.Debug("Fetched catalog metadata",
		zap.String("track_id", trackID),
		zap.String("title", meta.Title))

	return meta, nil
}
