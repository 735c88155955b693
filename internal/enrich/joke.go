package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// defaultJokeURL is the public joke API endpoint.
const defaultJokeURL = "https://official-joke-api.appspot.com/random_joke"

// jokeTimeout bounds the novelty fetch so it can never stall a request.
const jokeTimeout = 10 * time.Second

// Joke is the novelty payload attached to processing reports.
type Joke struct {
	Setup     string `json:"setup"`
	Punchline string `json:"punchline"`
}

// JokeClient fetches a random joke over HTTP. The zero value is not usable;
// use NewJokeClient.
type JokeClient struct {
	baseURL string
	client  *http.Client
}

// NewJokeClient creates a client against the public joke API.
// A non-empty baseURL overrides the endpoint (used in tests).
func NewJokeClient(baseURL string) *JokeClient {
	if baseURL == "" {
		baseURL = defaultJokeURL
	}
	return &JokeClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: jokeTimeout},
	}
}

// Fetch retrieves a random joke. Callers treat failures as best-effort and
// degrade to an empty joke.
func (c *JokeClient) Fetch(ctx context.Context) (Joke, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return Joke{}, fmt.Errorf("failed to create joke request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Joke{}, fmt.Errorf("joke fetch failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Joke{}, fmt.Errorf("joke API returned status %d", resp.StatusCode)
	}

	var joke Joke
	if err := json.NewDecoder(resp.Body).Decode(&joke); err != nil {
		return Joke{}, fmt.Errorf("failed to decode joke: %w", err)
	}
	return joke, nil
}
