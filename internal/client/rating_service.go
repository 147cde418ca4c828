// Package client talks to services outside this module's boundary.
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// RatingService looks up a participant's external rating when one wasn't
// supplied at registration time.
type RatingService struct {
	BaseURL string
	client  *http.Client
}

// RatingLookup is the response shape a rating provider is expected to return.
type RatingLookup struct {
	ParticipantName string `json:"participant_name"`
	Rating          int    `json:"rating"`
}

// NewRatingService builds a client from RATING_SERVICE_URL. A blank BaseURL
// is valid; callers should treat a lookup against it as "use the default
// rating" rather than an error.
func NewRatingService() *RatingService {
	baseURL := os.Getenv("RATING_SERVICE_URL")
	if baseURL == "" {
		log.Println("client: RATING_SERVICE_URL not set, rating lookups are disabled")
	}
	return &RatingService{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup fetches a participant's rating by name. It returns ok=false
// (never an error) when the service is unconfigured or the player is
// unknown, since an absent rating just falls back to domain.DefaultRating.
func (s *RatingService) Lookup(name string) (rating int, ok bool, err error) {
	if s.BaseURL == "" {
		return 0, false, nil
	}

	url := fmt.Sprintf("%s/ratings/%s", s.BaseURL, name)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return 0, false, fmt.Errorf("build rating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, false, fmt.Errorf("call rating service at %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, false, fmt.Errorf("rating service returned status %d: %s", resp.StatusCode, string(body))
	}

	var lookup RatingLookup
	if err := json.NewDecoder(resp.Body).Decode(&lookup); err != nil {
		return 0, false, fmt.Errorf("decode rating response: %w", err)
	}
	return lookup.Rating, true, nil
}
