package sequencing

import "github.com/rgehrsitz/dpgo/internal/domain"

// AvalancheStrategy: highest APR first, smaller balance breaks ties.
type AvalancheStrategy struct{}

func NewAvalancheStrategy() *AvalancheStrategy { return &AvalancheStrategy{} }

func (s *AvalancheStrategy) Name() string { return string(domain.Avalanche) }

func (s *AvalancheStrategy) Less(a, b *domain.DebtAccount) bool {
	if !a.APR.Equal(b.APR) {
		return a.APR.GreaterThan(b.APR)
	}
	return a.CurrentBalance.LessThan(b.CurrentBalance)
}
