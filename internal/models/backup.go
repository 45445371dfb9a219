package models

import (
	"time"
)

// BackupVersion is the payload version written by full-collection exports
const BackupVersion = "1.0"

// Backup is the full-collection export payload. Restore accepts exactly
// this shape and fails closed on anything else.
type Backup struct {
	Articles   []*Article `json:"articles"`
	ExportDate time.Time  `json:"exportDate"`
	Version    string     `json:"version"`
}
