package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Analysis type discriminators for persisted records
const (
	AnalysisTypeSSL = "ssl_analysis"
	AnalysisTypeDNS = "dns_security"
)

// JSON is a map column serialized as JSON in the database
type JSON map[string]any

// Value implements driver.Valuer
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}

	return json.Marshal(j)
}

// Scan implements sql.Scanner
func (j *JSON) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return errors.New("unsupported JSON column type")
	}
}

// AnalysisRecord is one immutable persisted analysis. Records are inserted
// once per request and never updated; dashboard read paths filter by
// UserID and key by ID.
type AnalysisRecord struct {
	ID           string `gorm:"primaryKey" json:"id"`
	UserID       string `gorm:"index" json:"user_id"`
	AnalysisType string `gorm:"index" json:"analysis_type"`
	InputData    JSON   `gorm:"type:json" json:"input_data"`
	Results      JSON   `gorm:"type:json" json:"results"`
	// ConfidenceScore is the security score normalized to [0,1]
	ConfidenceScore float64 `json:"confidence_score"`
	// ProcessingTimeMs is the analysis duration in milliseconds
	ProcessingTimeMs int64     `json:"processing_time"`
	CreatedAt        time.Time `json:"created_at"`
}

// TableName keeps the table shared with the dashboard read paths
func (AnalysisRecord) TableName() string {
	return "ai_security_analysis"
}
