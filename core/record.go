package core

// Record is one immutable logged utterance or event for a user. Timestamp is
// wall-clock seconds with float precision; within a user's log insertion
// order equals timestamp order. The JSON field names define the on-disk sink
// layout and must stay stable.
type Record struct {
	Timestamp float64        `json:"t"`
	Text      string         `json:"text"`
	Metadata  map[string]any `json:"meta"`
}
