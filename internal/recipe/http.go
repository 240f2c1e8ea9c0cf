package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// HTTPProvider fetches candidate recipes from a remote catalog service and
// picks among them locally, so the caller's rng decides the draw.
type HTTPProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client

	mu    sync.Mutex
	cache map[bucketKey][]*Recipe
}

// NewHTTPProvider creates a provider for the given search endpoint
func NewHTTPProvider(baseURL, apiKey string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		cache: make(map[bucketKey][]*Recipe),
	}
}

// FindRandom implements Provider
func (hp *HTTPProvider) FindRandom(ctx context.Context, meal MealType, diet DietType, rng *rand.Rand) (*Recipe, error) {
	bucket, err := hp.candidates(ctx, meal, diet)
	if err != nil {
		return nil, err
	}
	if len(bucket) == 0 {
		return nil, notFound(meal, diet)
	}
	return bucket[rng.Intn(len(bucket))], nil
}

func (hp *HTTPProvider) candidates(ctx context.Context, meal MealType, diet DietType) ([]*Recipe, error) {
	k := bucketKey{meal: meal, diet: diet}

	hp.mu.Lock()
	bucket, ok := hp.cache[k]
	hp.mu.Unlock()
	if ok {
		return bucket, nil
	}

	bucket, err := hp.search(ctx, meal, diet)
	if err != nil {
		return nil, err
	}

	hp.mu.Lock()
	hp.cache[k] = bucket
	hp.mu.Unlock()
	return bucket, nil
}

func (hp *HTTPProvider) search(ctx context.Context, meal MealType, diet DietType) ([]*Recipe, error) {
	reqURL, err := url.Parse(hp.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params := reqURL.Query()
	params.Set("meal_type", string(meal))
	params.Set("diet_type", string(diet))
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if hp.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+hp.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, notFound(meal, diet)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var apiResponse struct {
		Message string    `json:"message"`
		Data    []*Recipe `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	// Unknown meal tags and off-bucket entries are skipped.
	bucket := make([]*Recipe, 0, len(apiResponse.Data))
	for _, r := range apiResponse.Data {
		if r == nil || r.normalize() != nil {
			continue
		}
		if r.Serves(meal) && r.Suits(diet) {
			bucket = append(bucket, r)
		}
	}
	return bucket, nil
}
