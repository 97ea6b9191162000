package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata contains metadata about an ingested document
type Metadata struct {
	Filename  string `json:"filename,omitempty"`
	URL       string `json:"url,omitempty"`
	Format    Format `json:"format,omitempty"`
	Pages     int    `json:"pages,omitempty"`
	Bytes     int    `json:"bytes"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the raw bytes
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(raw []byte, filename string) *Metadata {
	return &Metadata{
		Filename:  filename,
		Bytes:     len(raw),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(raw),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
