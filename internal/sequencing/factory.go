package sequencing

import "github.com/rgehrsitz/dpgo/internal/domain"

// CreateStrategy builds the ordering strategy for a payoff strategy name.
// customOrder is only consulted for the custom strategy.
func CreateStrategy(strategy domain.Strategy, customOrder []string) OrderingStrategy {
	switch strategy {
	case domain.Snowball:
		return NewSnowballStrategy()
	case domain.Custom:
		return NewCustomStrategy(customOrder)
	default:
		// Fallback to avalanche for unknown or empty names
		return NewAvalancheStrategy()
	}
}
