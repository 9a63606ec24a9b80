package models

import "time"

// -----------------------------------------------------------------------------
// Persistence rows (request queue, stored feature records, labels).
// -----------------------------------------------------------------------------

const (
	RequestStatusPending   = "pending"
	RequestStatusFulfilled = "fulfilled"
)

// MFeatureRequest is one queued request for a feature build. CreatedAt is the
// anchor timestamp in unix milliseconds; it may be well in the past when the
// client submits delayed.
type MFeatureRequest struct {
	ID             string  `json:"id"`
	UserID         string  `json:"userId"`
	CreatedAt      int64   `json:"createdAt"`
	ClientFeatures string  `json:"clientFeatures"`
	Label          *string `json:"label"`
	LabelCategory  *string `json:"labelCategory"`
	Status         string  `json:"status"`
	FeatureID      *string `json:"featureId"`
}

// MFeatureRow is one persisted feature record; Data holds the flattened
// record JSON verbatim.
type MFeatureRow struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	CreatedAt int64  `json:"createdAt"`
	Source    string `json:"source"`
	Data      string `json:"data"`
}

// MLabelRow is one stored label linked to a feature record.
type MLabelRow struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	Label     string  `json:"label"`
	Category  *string `json:"category"`
	CreatedAt int64   `json:"createdAt"`
}

// MLatestData is the snapshot pushed to websocket listeners whenever a new
// feature record lands.
type MLatestData struct {
	Type         string         `json:"type"`
	FeatureID    string         `json:"feature_id"`
	UserID       string         `json:"user_id"`
	Source       string         `json:"source"`
	Features     map[string]any `json:"features"`
	PendingCount int            `json:"pending_count"`
	Timestamp    int64          `json:"timestamp"`
	GeneratedAt  time.Time      `json:"generated_at"`
}
