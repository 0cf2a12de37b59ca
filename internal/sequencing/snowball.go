package sequencing

import "github.com/rgehrsitz/dpgo/internal/domain"

// SnowballStrategy: smallest balance first, higher APR breaks ties.
type SnowballStrategy struct{}

func NewSnowballStrategy() *SnowballStrategy { return &SnowballStrategy{} }

func (s *SnowballStrategy) Name() string { return string(domain.Snowball) }

func (s *SnowballStrategy) Less(a, b *domain.DebtAccount) bool {
	if !a.CurrentBalance.Equal(b.CurrentBalance) {
		return a.CurrentBalance.LessThan(b.CurrentBalance)
	}
	return a.APR.GreaterThan(b.APR)
}
