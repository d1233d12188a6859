package domain

import "fmt"

// ScenarioStateInfo names a scenario and the state it should be put in.
type ScenarioStateInfo struct {
	Name  string `json:"scenarioName"`
	State string `json:"scenarioState"`
}

// NewScenarioStateInfo validates that both name and state are set.
func NewScenarioStateInfo(name, state string) (ScenarioStateInfo, error) {
	if name == "" {
		return ScenarioStateInfo{}, fmt.Errorf("%w: scenario name cannot be empty", ErrInvalidExpectation)
	}
	if state == "" {
		return ScenarioStateInfo{}, fmt.Errorf("%w: scenario state cannot be empty", ErrInvalidExpectation)
	}
	return ScenarioStateInfo{Name: name, State: state}, nil
}
