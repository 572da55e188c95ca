// Package request fetches web pages for scraping.
package request

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var client = &http.Client{Timeout: 20 * time.Second}

// FetchHTML does an HTTP GET on the given URL, then parses the response as
// HTML.
func FetchHTML(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error building request for '%s': %w", url, err)
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", "oshinavi/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching '%s': %w", url, err)
	}
	defer resp.Body.Close()

	if err := Error(resp); err != nil {
		return nil, fmt.Errorf("unexpected status from '%s': %w", url, err)
	}

	if mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-type")); mediaType != "text/html" {
		return nil, fmt.Errorf("expected an html response at '%s', but got '%s'", url, mediaType)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing html from '%s': %w", url, err)
	}
	doc.Url = resp.Request.URL

	return doc, nil
}

// A StatusError is a non-2xx response.
type StatusError struct {
	Code int

	// The start of the response body.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status code %d", e.Code)
	}
	return fmt.Sprintf("http status code %d: %s", e.Code, e.Body)
}

const maxErrorBody = 512

// Error checks the given http response for an error code, and, if one is
// present, returns a *StatusError holding the start of the body.
func Error(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	bs, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("http status code %d; error reading body: %w", resp.StatusCode, err)
	}
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(bs))}
}
