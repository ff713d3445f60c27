package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

const unsplashBaseURL = "https://api.unsplash.com"

// Unsplash searches photos through the Unsplash API.
type Unsplash struct {
	AccessKey string
	BaseURL   string
	client    *http.Client
}

func NewUnsplash(accessKey string) *Unsplash {
	return &Unsplash{AccessKey: accessKey, BaseURL: unsplashBaseURL, client: &http.Client{}}
}

type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// SearchImages returns regular-size photo URLs for query. Any non-200
// status, including 429 rate limiting, is an error.
func (u *Unsplash) SearchImages(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.BaseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+u.AccessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unsplash request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unsplash: status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var data unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse unsplash response: %w", err)
	}
	urls := make([]string, 0, len(data.Results))
	for _, r := range data.Results {
		if r.URLs.Regular != "" {
			urls = append(urls, r.URLs.Regular)
		}
	}
	return urls, nil
}
