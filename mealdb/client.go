package mealdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"recipefinder"
)

// DefaultBaseURL is the free public TheMealDB endpoint.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

const maxBodyBytes = 4 << 20

type Client struct {
	baseURL    string
	httpClient recipefinder.HTTPClient
	logger     recipefinder.CallLogger
}

type ClientOpts struct {
	BaseURL    string
	HTTPClient recipefinder.HTTPClient
	CallLogger recipefinder.CallLogger
}

func NewClient(opts ClientOpts) *Client {
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := opts.CallLogger
	if logger == nil {
		logger = recipefinder.NewNoOpCallLogger()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// Search returns the meals whose name matches query. An empty query lists
// every meal the endpoint is willing to return.
func (c *Client) Search(ctx context.Context, query string) ([]Recipe, error) {
	var env mealsEnvelope
	if err := c.get(ctx, "search.php", url.Values{"s": {query}}, &env, func() int { return len(env.Meals) }); err != nil {
		return nil, err
	}
	if env.Meals == nil {
		return []Recipe{}, nil
	}
	return env.Meals, nil
}

// Lookup returns the full record for one meal id.
func (c *Client) Lookup(ctx context.Context, id string) (Recipe, error) {
	var env mealsEnvelope
	if err := c.get(ctx, "lookup.php", url.Values{"i": {id}}, &env, func() int { return len(env.Meals) }); err != nil {
		return Recipe{}, err
	}
	if len(env.Meals) == 0 || env.Meals[0].ID == "" {
		return Recipe{}, fmt.Errorf("lookup %s: %w", id, ErrNotFound)
	}
	return env.Meals[0], nil
}

// Categories returns the category labels in upstream order.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var env categoriesEnvelope
	if err := c.get(ctx, "list.php", url.Values{"c": {"list"}}, &env, func() int { return len(env.Meals) }); err != nil {
		return nil, err
	}
	if env.Meals == nil {
		return nil, errors.New("categories response had no meals field")
	}
	names := make([]string, 0, len(env.Meals))
	for _, cat := range env.Meals {
		if cat.Name != "" {
			names = append(names, cat.Name)
		}
	}
	return names, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any, count func() int) (err error) {
	call := recipefinder.CallLog{Endpoint: endpoint, Query: params.Encode(), Timestamp: time.Now()}
	defer func() {
		call.Duration = time.Since(call.Timestamp)
		if err != nil {
			call.Error = err.Error()
		} else {
			call.Results = count()
		}
		if lerr := c.logger.LogCall(call); lerr != nil {
			slog.WarnContext(ctx, "MEALDB: failed to log call", "error", lerr)
		}
	}()

	reqURL := c.baseURL + "/" + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	slog.DebugContext(ctx, "MEALDB: request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	call.StatusCode = resp.StatusCode

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read %s response: %w", endpoint, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &StatusError{Operation: endpoint, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}
