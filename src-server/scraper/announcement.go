package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var ErrFetch = errors.New("can't fetch announcements")

// DefaultSelector matches the bullet lists on the news page; the last one holds
// the event schedule.
const DefaultSelector = "div.contents > ul"

// Announcement scrapes the event schedule out of an HTML news page.
type Announcement struct {
	url      string
	selector string
	client   *http.Client
}

func NewAnnouncement(url string, client *http.Client) *Announcement {
	if client == nil {
		client = http.DefaultClient
	}
	return &Announcement{
		url:      url,
		selector: DefaultSelector,
		client:   client,
	}
}

// FetchAnnouncementLines returns the leading text of every top-level <li> in
// the last matching list. Any failure is wrapped in ErrFetch.
func (a *Announcement) FetchAnnouncementLines(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: bad status code: %d", ErrFetch, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: can't parse page: %w", ErrFetch, err)
	}

	lists := doc.Find(a.selector)
	if lists.Length() == 0 {
		return nil, fmt.Errorf("%w: page has no %q", ErrFetch, a.selector)
	}

	lines := make([]string, 0)
	lists.Last().ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		if len(li.Nodes) == 0 {
			return
		}
		if text := firstText(li.Nodes[0]); text != "" {
			lines = append(lines, text)
		}
	})
	slog.Debug("announcement lines scraped", "url", a.url, "count", len(lines))
	return lines, nil
}

// firstText returns the first non-blank text node under n, trimmed. Nested
// lists and links after it are ignored.
func firstText(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if text := strings.TrimSpace(c.Data); text != "" {
				return text
			}
		case html.ElementNode:
			if text := firstText(c); text != "" {
				return text
			}
		}
	}
	return ""
}
