package sequencing

import "github.com/rgehrsitz/dpgo/internal/domain"

// CustomStrategy follows a user supplied list of account IDs. Accounts missing
// from the list come after every listed account, in avalanche order.
type CustomStrategy struct {
	priority map[string]int
	fallback OrderingStrategy
}

func NewCustomStrategy(order []string) *CustomStrategy {
	priority := make(map[string]int, len(order))
	for i, id := range order {
		if _, dup := priority[id]; !dup {
			priority[id] = i
		}
	}
	return &CustomStrategy{priority: priority, fallback: NewAvalancheStrategy()}
}

func (s *CustomStrategy) Name() string { return string(domain.Custom) }

func (s *CustomStrategy) Less(a, b *domain.DebtAccount) bool {
	pa, aListed := s.priority[a.ID]
	pb, bListed := s.priority[b.ID]
	switch {
	case aListed && bListed:
		return pa < pb
	case aListed != bListed:
		return aListed
	default:
		return s.fallback.Less(a, b)
	}
}
