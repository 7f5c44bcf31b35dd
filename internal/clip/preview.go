// Package clip reads share-page metadata for a submitted video URL so the
// UI has something to show while the analysis runs.
package clip

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/reelfind/internal/domain"
)

const (
	// maxPageBytes caps how much of a share page is read
	maxPageBytes = 2 << 20

	defaultTimeout = 10 * time.Second

	// Share pages serve a stripped document to unknown agents
	userAgent = "Mozilla/5.0 (compatible; reelfind)"
)

// Previewer fetches OpenGraph metadata from clip share pages
type Previewer struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewPreviewer creates a previewer. A nil client gets a default timeout.
func NewPreviewer(httpClient *http.Client, logger *slog.Logger) *Previewer {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Previewer{httpClient: httpClient, logger: logger}
}

// Fetch downloads the share page and extracts its preview
func (p *Previewer) Fetch(ctx context.Context, pageURL string) (domain.ClipPreview, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return domain.ClipPreview{}, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return domain.ClipPreview{}, fmt.Errorf("fetch share page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.ClipPreview{}, fmt.Errorf("fetch share page: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return domain.ClipPreview{}, fmt.Errorf("read share page: %w", err)
	}

	preview, err := Parse(body, pageURL)
	if err != nil {
		return domain.ClipPreview{}, err
	}
	p.logger.Debug("clip preview", "url", pageURL, "title", preview.Title, "empty", preview.IsEmpty())
	return preview, nil
}

// Parse extracts the OpenGraph title, description and image from html.
// The document <title> is used when og:title is missing.
func Parse(html []byte, pageURL string) (domain.ClipPreview, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return domain.ClipPreview{}, fmt.Errorf("parse share page: %w", err)
	}

	preview := domain.ClipPreview{
		URL:         pageURL,
		Title:       meta(doc, "og:title"),
		Description: meta(doc, "og:description"),
		Image:       meta(doc, "og:image"),
	}
	if preview.Title == "" {
		preview.Title = normSpace(doc.Find("head title").First().Text())
	}
	if preview.Description == "" {
		preview.Description = metaName(doc, "description")
	}
	return preview, nil
}

// meta reads an OpenGraph property tag
func meta(doc *goquery.Document, property string) string {
	v, _ := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).First().Attr("content")
	return normSpace(v)
}

func metaName(doc *goquery.Document, name string) string {
	v, _ := doc.Find(fmt.Sprintf(`meta[name=%q]`, name)).First().Attr("content")
	return normSpace(v)
}

func normSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
