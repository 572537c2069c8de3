package artifact

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

// Reference is one prediction recorded when an artifact was generated.
// A model that disagrees with its references has drifted.
type Reference struct {
	Selection domain.Selection `json:"selection"`
	PMV       float64          `json:"pmv"`
	Sensation string           `json:"sensation"`
}

// LoadReferences reads a reference file written by WriteReferences.
func LoadReferences(path string) ([]Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read references: %w", err)
	}
	var refs []Reference
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, fmt.Errorf("decode references %s: %w", path, err)
	}
	return refs, nil
}

// WriteReferences stores refs as indented JSON.
func WriteReferences(path string, refs []Reference) error {
	data, err := json.MarshalIndent(refs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode references: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write references: %w", err)
	}
	return nil
}
