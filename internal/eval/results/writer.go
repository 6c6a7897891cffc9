package results

import (
	"context"
	"errors"
)

// Writer persists a full snapshot of the result table, replacing whatever
// an earlier call wrote.
type Writer interface {
	Write(ctx context.Context, records []Record) error
}

type MultiWriter []Writer

func (m MultiWriter) Write(ctx context.Context, records []Record) error {
	var errs []error
	for _, w := range m {
		if err := w.Write(ctx, records); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
