package ingest

import (
	"path/filepath"

	"github.com/schollz/progressbar/v3"
)

// BarSink renders batch progress with a terminal progress bar.
type BarSink struct {
	bar *progressbar.ProgressBar
}

// NewBarSink creates a progress-bar sink.
func NewBarSink() *BarSink {
	return &BarSink{}
}

// Start initializes the bar for the given document count.
func (s *BarSink) Start(total int) {
	s.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Importing statements"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// Advance marks one document as processed.
func (s *BarSink) Advance(path string) {
	if s.bar == nil {
		return
	}
	s.bar.Describe("Importing " + filepath.Base(path))
	_ = s.bar.Add(1)
}

// Finish completes the bar.
func (s *BarSink) Finish() {
	if s.bar != nil {
		_ = s.bar.Finish()
	}
}
