// internal/meaning/tdk.go
//
// Word definitions from the Turkish Language Association dictionary
// (sozluk.gov.tr).
//
// The /gts endpoint answers with an array of entries, each carrying an
// "anlamlarListe" list of senses; the first sense of the first entry is
// used. Unknown words come back as {"error": "..."} with status 200.

package meaning

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public TDK dictionary.
const DefaultBaseURL = "https://sozluk.gov.tr"

// Client queries the dictionary.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client with a bounded HTTP timeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: &http.Client{Timeout: timeout}}
}

type entry struct {
	Senses []struct {
		Text string `json:"anlam"`
	} `json:"anlamlarListe"`
}

// Meaning returns the first definition of word, or "" when the dictionary
// has no entry for it.
func (c *Client) Meaning(ctx context.Context, word string) (string, error) {
	u := c.BaseURL + "/gts?ara=" + url.QueryEscape(word)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("lookup %q: %w", word, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lookup %q: status %d", word, res.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("decode %q: %w", word, err)
	}
	// Not-found answers are an object, not an array.
	if len(raw) == 0 || raw[0] != '[' {
		return "", nil
	}
	var entries []entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return "", fmt.Errorf("decode %q: %w", word, err)
	}
	if len(entries) == 0 || len(entries[0].Senses) == 0 {
		return "", nil
	}
	return strings.TrimSpace(entries[0].Senses[0].Text), nil
}
