package paper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

// Fetch queries the arXiv export API for the most recently submitted papers
// in the configured categories.
func (s *implSource) Fetch(ctx context.Context, maxResults int) []models.PaperRecord {
	if maxResults <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	feed, err := s.fetchFeed(ctx, maxResults)
	if err != nil {
		s.logger.Warn(ctx, "Feed fetch failed: %v", err)
		return nil
	}

	papers := make([]models.PaperRecord, 0, len(feed.Items))
	for _, item := range feed.Items {
		if len(papers) == maxResults {
			break
		}
		rec, ok := toRecord(item)
		if !ok {
			s.logger.Debug(ctx, "Skipping feed entry without title or locator: %q", item.Title)
			continue
		}
		rec.PublishedOrder = len(papers)
		papers = append(papers, rec)
	}

	s.logger.Info(ctx, "Fetched %d papers from feed", len(papers))
	return papers
}

func (s *implSource) fetchFeed(ctx context.Context, maxResults int) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.queryURL(maxResults), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get feed: unexpected status %d", resp.StatusCode)
	}

	feed, err := s.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed, nil
}

// queryURL builds the export API query sorted by submission date, newest first.
func (s *implSource) queryURL(maxResults int) string {
	cats := make([]string, 0, len(s.cfg.Categories))
	for _, c := range s.cfg.Categories {
		cats = append(cats, "cat:"+c)
	}

	q := url.Values{}
	q.Set("search_query", strings.Join(cats, " OR "))
	q.Set("start", "0")
	q.Set("max_results", strconv.Itoa(maxResults))
	q.Set("sortBy", "submittedDate")
	q.Set("sortOrder", "descending")

	return s.cfg.URL + "?" + q.Encode()
}

// toRecord maps a feed entry to a PaperRecord at the boundary.
func toRecord(item *gofeed.Item) (models.PaperRecord, bool) {
	if item == nil {
		return models.PaperRecord{}, false
	}

	title := strings.Join(strings.Fields(item.Title), " ")
	locator := pdfLocator(item)
	if title == "" || locator == "" {
		return models.PaperRecord{}, false
	}

	rec := models.PaperRecord{
		ID:              item.GUID,
		Title:           title,
		DocumentLocator: locator,
	}
	if item.PublishedParsed != nil {
		rec.Published = *item.PublishedParsed
	}
	return rec, true
}

// pdfLocator prefers an explicit PDF link and otherwise derives one from
// the abstract page id (".../abs/<id>" -> ".../pdf/<id>.pdf").
func pdfLocator(item *gofeed.Item) string {
	for _, link := range item.Links {
		if strings.Contains(link, "/pdf/") {
			return link
		}
	}

	id := item.GUID
	if id == "" {
		id = item.Link
	}
	if !strings.Contains(id, "/abs/") {
		return ""
	}
	return strings.Replace(id, "/abs/", "/pdf/", 1) + ".pdf"
}
