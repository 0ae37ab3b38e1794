package fixture

import (
	"context"
	"sync"

	"eurTokenOracle/internal/chain"
)

// Shared resolves the fixture at most once and hands the same Result to
// every caller. A failed resolution is remembered too.
type Shared struct {
	resolver *Resolver
	accounts []chain.Account

	once   sync.Once
	result *Result
	err    error
}

func NewShared(resolver *Resolver, accounts []chain.Account) *Shared {
	return &Shared{resolver: resolver, accounts: accounts}
}

// Get returns the shared Result, resolving it on first use with ctx.
func (s *Shared) Get(ctx context.Context) (*Result, error) {
	s.once.Do(func() {
		s.result, s.err = s.resolver.Resolve(ctx, s.accounts)
	})
	return s.result, s.err
}
