package mock

import (
	"context"

	"github.com/passivleads/leadscout"
)

var _ leadscout.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of leadscout.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
