// Package site reads preview metadata (title, description, image) from an
// artist's official website.
package site

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/amonks/oshinavi/request"
)

type Preview struct {
	Title       string
	Description string
	ImageURL    string
}

// Fetch requests the page at pageURL and extracts its preview.
func Fetch(ctx context.Context, pageURL string) (*Preview, error) {
	doc, err := request.FetchHTML(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return Extract(doc), nil
}

// Extract reads Open Graph tags from doc, falling back to twitter cards and
// the <title>. Relative image URLs are resolved against doc.Url.
func Extract(doc *goquery.Document) *Preview {
	page := pageElement{doc.Selection}
	preview := &Preview{
		Title:       page.first("og:title", "twitter:title"),
		Description: page.first("og:description", "twitter:description", "description"),
		ImageURL:    page.first("og:image", "og:image:url", "twitter:image"),
	}
	if preview.Title == "" {
		preview.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if preview.ImageURL != "" && doc.Url != nil {
		if ref, err := url.Parse(preview.ImageURL); err == nil {
			preview.ImageURL = doc.Url.ResolveReference(ref).String()
		}
	}
	return preview
}

type pageElement struct{ *goquery.Selection }

// first returns the content of the first non-empty meta tag among names,
// matching either the property or the name attribute.
func (el pageElement) first(names ...string) string {
	for _, name := range names {
		var content string
		el.Find("meta").EachWithBreak(func(i int, sel *goquery.Selection) bool {
			prop, _ := sel.Attr("property")
			if prop == "" {
				prop, _ = sel.Attr("name")
			}
			if !strings.EqualFold(prop, name) {
				return true
			}
			content = strings.TrimSpace(sel.AttrOr("content", ""))
			return content == ""
		})
		if content != "" {
			return content
		}
	}
	return ""
}
