package models

// Requests for query HTTP endpoints. Defined in domain for consistency and reuse.

type QueryRequest struct {
	Query    string `json:"query" validate:"required,min=3,max=500"`
	NResults int    `json:"n_results" default:"3" validate:"gte=1,lte=10"`
}
