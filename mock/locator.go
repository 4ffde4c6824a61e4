package mock

import (
	"context"

	"github.com/sitescout/sitescout"
)

var _ sitescout.Locator = (*Locator)(nil)

// Locator is a mock implementation of sitescout.Locator.
type Locator struct {
	LocateFn func(ctx context.Context, query string, sections *sitescout.SectionMap) (sitescout.SectionChoice, error)
}

func (l *Locator) Locate(ctx context.Context, query string, sections *sitescout.SectionMap) (sitescout.SectionChoice, error) {
	return l.LocateFn(ctx, query, sections)
}
