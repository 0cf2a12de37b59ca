package output

import (
	"encoding/json"

	"github.com/rgehrsitz/dpgo/internal/domain"
)

// JSONFormatter renders the full result, schedule included when recorded.
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}
