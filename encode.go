package fincoach

// this file handles the JSON form of scenarios: the same shape the advisor
// produces, also accepted from files on the command line.

import (
	"encoding/json"
	"fmt"
)

// scenarioJSON is the wire form of a scenario, with loosely typed
// assumptions.
type scenarioJSON struct {
	ID              string         `json:"id"`
	Type            string         `json:"type"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Assumptions     map[string]any `json:"assumptions"`
	TimeframeMonths int            `json:"timeframeMonths"`
	Probability     float64        `json:"probability"`
	Impact          string         `json:"impact"`
}

// UnmarshalJSON decodes the wire form, normalizing the assumption payload
// into the typed variant for the scenario type. A missing id gets a fresh
// ULID.
func (s *FinancialScenario) UnmarshalJSON(b []byte) error {
	var w scenarioJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	t, err := ParseScenarioType(w.Type)
	if err != nil {
		return err
	}
	if w.ID == "" {
		w.ID = NewScenarioID()
	}
	*s = FinancialScenario{
		ID:              w.ID,
		Type:            t,
		Name:            w.Name,
		Description:     w.Description,
		Assumptions:     NormalizeAssumptions(t, w.Assumptions),
		TimeframeMonths: w.TimeframeMonths,
		Probability:     w.Probability,
		Impact:          ParseImpact(w.Impact),
	}
	return nil
}

// DecodeScenario decodes and validates a single scenario from its JSON form.
func DecodeScenario(b []byte) (*FinancialScenario, error) {
	s := new(FinancialScenario)
	if err := json.Unmarshal(b, s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
