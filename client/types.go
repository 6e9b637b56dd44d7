package client

// Wire types for the game API. Field names follow the server's camelCase
// JSON exactly.

// ConstraintPayload is one attribute minimum as reported at game creation.
type ConstraintPayload struct {
	Attribute string `json:"attribute"`
	MinCount  int    `json:"minCount"`
}

// StatisticsPayload carries the advertised population statistics.
type StatisticsPayload struct {
	RelativeFrequencies map[string]float64            `json:"relativeFrequencies"`
	Correlations        map[string]map[string]float64 `json:"correlations"`
}

// NewGameResponse is the server's reply to game registration.
type NewGameResponse struct {
	GameID              string              `json:"gameId"`
	Constraints         []ConstraintPayload `json:"constraints"`
	AttributeStatistics *StatisticsPayload  `json:"attributeStatistics"`
}

// PersonPayload is the next candidate revealed by the server.
type PersonPayload struct {
	PersonIndex int             `json:"personIndex"`
	Attributes  map[string]bool `json:"attributes"`
}

// DecideResponse is the server's reply to a decision: updated counters, the
// session status, and — while running — the next candidate.
type DecideResponse struct {
	Status        string         `json:"status"` // running | completed | failed
	AdmittedCount int            `json:"admittedCount"`
	RejectedCount int            `json:"rejectedCount"`
	NextPerson    *PersonPayload `json:"nextPerson"`
	Reason        string         `json:"reason,omitempty"` // populated on failure
}
