// Package ui provides terminal progress display for interactive runs.
package ui

import (
	"time"

	"github.com/briandowns/spinner"
)

// Spinner animates a progress indicator on stderr.
type Spinner struct {
	s *spinner.Spinner
}

func NewSpinner() *Spinner {
	return &Spinner{s: spinner.New(spinner.CharSets[14], 100*time.Millisecond)}
}

// Start begins the animation with the given message.
func (sp *Spinner) Start(msg string) {
	sp.s.Suffix = " " + msg
	sp.s.Start()
}

// Update changes the message while the spinner is running. The render
// goroutine reads Suffix under the spinner's lock, so the write takes the
// same lock.
func (sp *Spinner) Update(msg string) {
	sp.s.Lock()
	sp.s.Suffix = " " + msg
	sp.s.Unlock()
}

// Stop halts the animation and clears the line.
func (sp *Spinner) Stop() {
	sp.s.Stop()
}
