// Command feed_probe fetches the configured table feeds and reports what the
// parser sees: headers, row counts and how many rows survive mapping. Run it
// against new sheet URLs before pointing the server at them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/surat-tugas/portal-api/internal/normalize"
	"github.com/surat-tugas/portal-api/internal/repository"
	"github.com/surat-tugas/portal-api/internal/sheets"
	"github.com/surat-tugas/portal-api/pkg/config"
)

func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "overall probe timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := zap.NewNop()
	client := sheets.NewClient(cfg.Sheets, logger)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	feeds := []sheets.Feed{sheets.FeedTeachers, sheets.FeedAssignments, sheets.FeedServiceLog, sheets.FeedRequests}
	failed := false
	for _, feed := range feeds {
		table, err := client.Fetch(ctx, feed)
		if err != nil {
			fmt.Printf("%-12s FAIL  %v\n", feed, err)
			failed = true
			continue
		}
		fmt.Printf("%-12s OK    %d columns, %d rows\n", feed, len(table.Headers), len(table.Rows))
		for _, header := range table.Headers {
			fmt.Printf("    kolom: %q (kanonik %q)\n", header, normalize.Header(header))
		}
	}
	if failed {
		os.Exit(1)
	}

	locale := normalize.NewLocale(cfg.Locale.MonthNames, cfg.Locale.DayNames)
	repo := repository.NewSheetRepository(client, locale, logger)
	snapshot, err := repo.Snapshot(ctx)
	if err != nil {
		log.Fatalf("snapshot mapping failed: %v", err)
	}

	fmt.Println()
	fmt.Printf("pengajar   : %d\n", len(snapshot.Teachers))
	fmt.Printf("penugasan  : %d\n", len(snapshot.Assignments))
	fmt.Printf("pelayanan  : %d\n", len(snapshot.ServiceLogs))
	fmt.Printf("permintaan : %d\n", len(snapshot.Requests))

	pending := 0
	for _, req := range snapshot.Requests {
		if req.Pending() {
			pending++
		}
	}
	fmt.Printf("menunggu   : %d\n", pending)
}
