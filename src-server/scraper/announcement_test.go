package scraper_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"neneka/src-server/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body>
<div class="contents">
  <ul><li>Old news (1/1 0:00 UTC)</li></ul>
  <ul>
    <li>Summer Fest (7/1 10:00 - 7/10 23:59 UTC)</li>
    <li>
      Maintenance (7/3 4:00 UTC)
      <ul><li>nested detail</li></ul>
    </li>
    <li><b>Gacha (Limited) (8/1 5:00 - 8/15 4:59 UTC)</b></li>
    <li>   </li>
  </ul>
</div>
</body></html>`

func TestFetchAnnouncementLines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	lines, err := scraper.NewAnnouncement(srv.URL, srv.Client()).FetchAnnouncementLines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Summer Fest (7/1 10:00 - 7/10 23:59 UTC)",
		"Maintenance (7/3 4:00 UTC)",
		"Gacha (Limited) (8/1 5:00 - 8/15 4:59 UTC)",
	}, lines)
}

func TestFetchAnnouncementLinesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/down":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.Write([]byte("<html><body><p>moved</p></body></html>"))
		}
	}))
	defer srv.Close()

	_, err := scraper.NewAnnouncement(srv.URL+"/down", srv.Client()).FetchAnnouncementLines(context.Background())
	assert.ErrorIs(t, err, scraper.ErrFetch)

	_, err = scraper.NewAnnouncement(srv.URL+"/empty", srv.Client()).FetchAnnouncementLines(context.Background())
	assert.ErrorIs(t, err, scraper.ErrFetch)
}
