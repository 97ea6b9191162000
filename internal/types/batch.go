package types

import "time"

// BatchItem is the outcome of analyzing one document in a batch.
// Error is empty on success; Record is always well-formed.
type BatchItem struct {
	SourceID string         `json:"source_id"`
	Record   AnalysisRecord `json:"record"`
	Error    string         `json:"error,omitempty"`
}

// Failed reports whether the item carries an error marker
func (i BatchItem) Failed() bool {
	return i.Error != ""
}

// BatchSummary aggregates scores over the successful items of a batch
type BatchSummary struct {
	Total     int     `json:"total"`
	Succeeded int     `json:"succeeded"`
	Failed    int     `json:"failed"`
	TopScore  int     `json:"top_score"`
	TopSource string  `json:"top_source,omitempty"`
	MeanScore float64 `json:"mean_score"`
}

// BatchReport holds every item sorted by score plus the filtered shortlist
type BatchReport struct {
	RunID     string       `json:"run_id,omitempty"`
	MinScore  int          `json:"min_score"`
	Items     []BatchItem  `json:"items"`
	Shortlist []BatchItem  `json:"shortlist"`
	Summary   BatchSummary `json:"summary"`
	CreatedAt time.Time    `json:"created_at"`
}

// BatchProgress is emitted after each document finishes
type BatchProgress struct {
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	SourceID  string `json:"source_id"`
	Score     int    `json:"score"`
	Error     string `json:"error,omitempty"`
}
