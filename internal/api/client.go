// internal/api/client.go
//
// HTTP client for the word backend.
//
// Endpoints (all JSON):
//   GET  /words/{lang}           → {"words": [...]}
//   GET  /word/today/{lang}      → daily.Puzzle
//   GET  /word/previous/{lang}   → {"previous": [daily.Puzzle...]}
//   POST /auth/signup            → {"token": "...", "username": "..."}
//   POST /auth/login             → {"token": "...", "username": "..."}
//   POST /results/{lang}         ← {"day", "guesses", "won"} (bearer token)
//   GET  /leaderboard/{lang}?day → {"day", "top": [...]}
//
// The public backend and `kelime serve` speak the same API.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/robalobadob/kelime/internal/daily"
	"github.com/robalobadob/kelime/internal/words"
)

// DefaultBaseURL is the public backend.
const DefaultBaseURL = "https://wordle-backend.orhanbalci.workers.dev"

// Client talks to one backend for one language.
type Client struct {
	BaseURL string
	Lang    string
	Token   string // bearer token for authenticated calls
	HTTP    *http.Client
}

// New returns a client with a bounded HTTP timeout.
func New(baseURL, lang string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Lang:    lang,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Code, e.Body)
}

// Dictionary fetches the word list. It satisfies words.Fetcher.
func (c *Client) Dictionary(ctx context.Context) ([]string, error) {
	var f words.File
	if err := c.do(ctx, http.MethodGet, "/words/"+url.PathEscape(c.Lang), nil, &f); err != nil {
		return nil, err
	}
	return f.Words, nil
}

// Today fetches today's puzzle.
func (c *Client) Today(ctx context.Context) (daily.Puzzle, error) {
	var p daily.Puzzle
	err := c.do(ctx, http.MethodGet, "/word/today/"+url.PathEscape(c.Lang), nil, &p)
	return p, err
}

// Previous fetches the puzzles of the preceding days, most recent first.
func (c *Client) Previous(ctx context.Context) ([]daily.Puzzle, error) {
	var p daily.Previous
	if err := c.do(ctx, http.MethodGet, "/word/previous/"+url.PathEscape(c.Lang), nil, &p); err != nil {
		return nil, err
	}
	return p.Previous, nil
}

// Credentials is the signup/login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is returned by signup and login.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Signup creates an account and returns its session.
func (c *Client) Signup(ctx context.Context, username, password string) (Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/auth/signup", Credentials{username, password}, &s)
	return s, err
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/auth/login", Credentials{username, password}, &s)
	return s, err
}

// Submission is a finished puzzle reported to the leaderboard.
type Submission struct {
	Day     int  `json:"day"`
	Guesses int  `json:"guesses"`
	Won     bool `json:"won"`
}

// SubmitResult reports a finished puzzle. Requires Token.
func (c *Client) SubmitResult(ctx context.Context, s Submission) error {
	return c.do(ctx, http.MethodPost, "/results/"+url.PathEscape(c.Lang), s, nil)
}

// Leaderboard is the payload of /leaderboard/{lang}.
type Leaderboard struct {
	Day int           `json:"day"`
	Top []daily.LBRow `json:"top"`
}

// Leaderboard fetches the winners of day.
func (c *Client) Leaderboard(ctx context.Context, day int) (Leaderboard, error) {
	var lb Leaderboard
	path := "/leaderboard/" + url.PathEscape(c.Lang) + "?day=" + strconv.Itoa(day)
	err := c.do(ctx, http.MethodGet, path, nil, &lb)
	return lb, err
}

// do sends a request with an optional JSON body and decodes a JSON reply
// into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	res, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return &StatusError{Code: res.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
