// Package gemini looks artists up with Google's Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/amonks/oshinavi/data"
	"github.com/amonks/oshinavi/limiter"
	"github.com/amonks/oshinavi/readthrough"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

var (
	// ErrSearchFailed is the only error a failed lookup surfaces. The cause
	// is logged.
	ErrSearchFailed = errors.New("failed to fetch artist data")

	ErrEmptyQuery = errors.New("empty query")
)

// Searcher looks up an artist by free-text query.
type Searcher interface {
	Search(ctx context.Context, query string) (*data.Artist, error)
}

type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Client struct {
	models generator
	model  string
	cache  *readthrough.ReadThrough
	lim    *limiter.Limiter
	log    *zap.Logger
}

type Options struct {
	APIKey string
	Model  string

	// Cache and Limiter are optional.
	Cache   *readthrough.ReadThrough
	Limiter *limiter.Limiter

	Logger *zap.Logger
}

// New creates a client for the Gemini API.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating gemini client: %w", err)
	}
	return newClient(client.Models, opts), nil
}

func newClient(models generator, opts Options) *Client {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{
		models: models,
		model:  opts.Model,
		cache:  opts.Cache,
		lim:    opts.Limiter,
		log:    opts.Logger,
	}
}

var artistSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name":            {Type: genai.TypeString, Description: "The official name of the artist or band."},
		"genre":           {Type: genai.TypeString, Description: "The primary genre of the artist."},
		"description":     {Type: genai.TypeString, Description: "A brief 2-3 sentence biography of the artist."},
		"officialWebsite": {Type: genai.TypeString, Description: "The official homepage URL for the artist. If not found, return an empty string."},
	},
	Required: []string{"name", "genre", "description", "officialWebsite"},
}

func prompt(query string) string {
	return fmt.Sprintf("Find information for the artist: %q. Provide their official name, genre, a short description, and their official website URL.", query)
}

// Search asks the model for a structured record of the artist matching
// query. Every failure is reported as ErrSearchFailed.
func (c *Client) Search(ctx context.Context, query string) (*data.Artist, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	artist, err := c.search(ctx, query)
	if err != nil {
		c.log.Error("artist search failed", zap.String("query", query), zap.Error(err))
		return nil, ErrSearchFailed
	}
	return artist, nil
}

func (c *Client) search(ctx context.Context, query string) (*data.Artist, error) {
	key := strings.ToLower(query)
	if c.cache != nil {
		if bs, err := c.cache.Get(key); err == nil {
			c.log.Debug("artist search cache hit", zap.String("query", query))
			return parseArtist(string(bs))
		} else if !errors.Is(err, readthrough.ErrMiss) {
			c.log.Warn("artist search cache error", zap.Error(err))
		}
	}

	if c.lim != nil {
		if err := c.lim.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt(query)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   artistSchema,
	})
	if c.lim != nil {
		if err := c.lim.Delay(); err != nil {
			c.log.Warn("error delaying limiter", zap.Error(err))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("error generating content for '%s': %w", query, err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("received empty response for '%s'", query)
	}

	artist, err := parseArtist(text)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(key, []byte(text)); err != nil {
			c.log.Warn("error caching artist search", zap.Error(err))
		}
	}
	return artist, nil
}

func parseArtist(text string) (*data.Artist, error) {
	var artist data.Artist
	if err := json.Unmarshal([]byte(text), &artist); err != nil {
		return nil, fmt.Errorf("error decoding artist json: %w", err)
	}
	artist.Name = strings.TrimSpace(artist.Name)
	if artist.Name == "" {
		return nil, fmt.Errorf("artist response has no name")
	}
	artist.OfficialWebsite = strings.TrimSpace(artist.OfficialWebsite)
	return &artist, nil
}
