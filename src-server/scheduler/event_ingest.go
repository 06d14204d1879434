package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"neneka/src-server/metric"
	"neneka/src-server/service"
)

type Ingester interface {
	Ingest(ctx context.Context) (service.IngestReport, error)
}

// IngestJob refreshes events from the announcement page.
func IngestJob(ingester Ingester) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		report, err := ingester.Ingest(ctx)
		if err != nil {
			return fmt.Errorf("IngestJob: %w", err)
		}
		metric.EventsIngested.Add(float64(report.Inserted))
		metric.EventsRejected.Add(float64(report.Rejected))
		metric.EventsCleaned.Add(float64(report.Cleaned))
		slog.Info("events ingested",
			"lines", report.Lines,
			"rejected", report.Rejected,
			"inserted", report.Inserted,
			"cleaned", report.Cleaned,
		)
		return nil
	}
}
