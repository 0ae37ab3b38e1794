package storage

import (
	"context"

	"eurTokenOracle/internal/model"
)

// Storage defines a sink for fixture run reports.
type Storage interface {
	PutRunReport(ctx context.Context, report model.RunReport) error
}

// Multi writes a report to every sink in order.
type Multi []Storage

func (m Multi) PutRunReport(ctx context.Context, report model.RunReport) error {
	for _, sink := range m {
		if err := sink.PutRunReport(ctx, report); err != nil {
			return err
		}
	}
	return nil
}
