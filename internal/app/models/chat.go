package models

import "time"

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// GroundingSource is a citation returned alongside a grounded free-form
// answer.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// LocationResult is a map pin extracted from a free-form answer.
type LocationResult struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// ChatMessage is one turn in the session transcript. A placeholder assistant
// message may have its Content rewritten in place once its async result
// resolves; the ID is the stable handle for that mutation.
type ChatMessage struct {
	ID        string            `json:"id"`
	Role      ChatRole          `json:"role"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Sources   []GroundingSource `json:"sources,omitempty"`
	Locations []LocationResult  `json:"location_data,omitempty"`
}

// QueryResponse is the gateway's answer to a free-form question.
type QueryResponse struct {
	Text      string            `json:"text"`
	Sources   []GroundingSource `json:"sources,omitempty"`
	Locations []LocationResult  `json:"location_data,omitempty"`
}
