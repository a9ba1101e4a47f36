package api

import (
	"time"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type RunResponse struct {
	Vertical     string    `json:"vertical"`
	RunDate      string    `json:"run_date"`
	Status       string    `json:"status"`
	ItemsFetched int       `json:"items_fetched"`
	ItemsUsed    int       `json:"items_used"`
	WordCount    int       `json:"word_count"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
