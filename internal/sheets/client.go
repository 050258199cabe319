package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/surat-tugas/portal-api/pkg/config"
)

// Feed identifies one of the four source tables.
type Feed string

const (
	FeedTeachers    Feed = "teachers"
	FeedAssignments Feed = "assignments"
	FeedServiceLog  Feed = "service_log"
	FeedRequests    Feed = "requests"
)

// FeedSet holds one decoded table per feed.
type FeedSet struct {
	Teachers    *Table
	Assignments *Table
	ServiceLog  *Table
	Requests    *Table
}

// Client fetches and decodes the gviz feeds.
type Client struct {
	httpClient *http.Client
	urls       map[Feed]string
	logger     *zap.Logger
}

// NewClient builds a feed client from configuration.
func NewClient(cfg config.SheetsConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.FetchTimeout},
		urls: map[Feed]string{
			FeedTeachers:    cfg.TeacherURL,
			FeedAssignments: cfg.AssignmentURL,
			FeedServiceLog:  cfg.ServiceLogURL,
			FeedRequests:    cfg.RequestURL,
		},
		logger: logger,
	}
}

// Fetch retrieves and decodes a single feed.
func (c *Client) Fetch(ctx context.Context, feed Feed) (*Table, error) {
	url, ok := c.urls[feed]
	if !ok || url == "" {
		return nil, fmt.Errorf("no url configured for feed %s", feed)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for feed %s: %w", feed, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch feed %s: unexpected status %d", feed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", feed, err)
	}

	table, err := ParseFeed(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feed, err)
	}

	c.logger.Debug("feed fetched",
		zap.String("feed", string(feed)),
		zap.Int("rows", len(table.Rows)),
		zap.Duration("latency", time.Since(start)))

	return table, nil
}

// FetchAll retrieves the four feeds concurrently and awaits them jointly.
// Any single failure fails the whole ingest; there is no partial result.
func (c *Client) FetchAll(ctx context.Context) (*FeedSet, error) {
	set := &FeedSet{}
	g, ctx := errgroup.WithContext(ctx)

	fetch := func(feed Feed, dest **Table) func() error {
		return func() error {
			table, err := c.Fetch(ctx, feed)
			if err != nil {
				return err
			}
			*dest = table
			return nil
		}
	}

	g.Go(fetch(FeedTeachers, &set.Teachers))
	g.Go(fetch(FeedAssignments, &set.Assignments))
	g.Go(fetch(FeedServiceLog, &set.ServiceLog))
	g.Go(fetch(FeedRequests, &set.Requests))

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return set, nil
}
