package models

import "time"

// Article is a raw market news item entering the ingest path.
type Article struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
	Prices    []float64 `json:"prices,omitempty"`
}

// IndexedDocument is an article rendered to report form and embedded,
// ready for the vector store.
type IndexedDocument struct {
	ID        string
	Content   string
	Source    string
	Timestamp time.Time
	Embedding []float32
}

// RetrievedMatch is a single vector store hit with its raw distance.
// Lower distance means closer.
type RetrievedMatch struct {
	Document  string
	Source    string
	Timestamp time.Time
	Distance  float64
}
