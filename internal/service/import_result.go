package service

import (
	"fmt"
	"time"

	"github.com/yourusername/odds-lab/internal/models"
)

// ImportResult tracks statistics about one dataset import
type ImportResult struct {
	ID        string        `json:"id"`
	Sport     models.Sport  `json:"sport"`
	Source    string        `json:"source"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
	Loaded    int           `json:"loaded"`
	Written   int64         `json:"written"`
	Replaced  int64         `json:"replaced"`
	Truncated bool          `json:"truncated"`
}

// String returns a formatted summary
func (r *ImportResult) String() string {
	return fmt.Sprintf(
		"Import %s [%s from %s]: loaded=%d written=%d replaced=%d duration=%v",
		r.ID, r.Sport, r.Source, r.Loaded, r.Written, r.Replaced, r.Duration,
	)
}
