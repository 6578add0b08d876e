package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tripmaker/internal/models/response_models"
)

// Geocoder resolves free text to a single best-match coordinate pair.
// A nil result with nil error means the provider found nothing.
type Geocoder interface {
	FindPlace(ctx context.Context, query string) (*response_models.Coordinates, error)
}

// GooglePlacesClient calls the Places "Find Place from Text" endpoint.
type GooglePlacesClient struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
}

func NewGooglePlacesClient(apiKey, baseURL string) *GooglePlacesClient {
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com/maps/api"
	}
	return &GooglePlacesClient{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

type findPlaceResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Candidates   []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"candidates"`
}

func (c *GooglePlacesClient) FindPlace(ctx context.Context, query string) (*response_models.Coordinates, error) {
	q := url.Values{}
	q.Set("input", query)
	q.Set("inputtype", "textquery")
	q.Set("fields", "geometry")
	q.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/place/findplacefromtext/json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("places bad status: %s", resp.Status)
	}

	var payload findPlaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("places decode: %w", err)
	}

	switch payload.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, fmt.Errorf("places status %s: %s", payload.Status, payload.ErrorMessage)
	}
	if len(payload.Candidates) == 0 {
		return nil, nil
	}

	loc := payload.Candidates[0].Geometry.Location
	return &response_models.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}
