package render

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// SpinnerStyle selects a spinner animation.
type SpinnerStyle int

const (
	// SpinnerBraille is used for plain HTTP fetches
	SpinnerBraille SpinnerStyle = iota
	// SpinnerGlobe is used while the headless browser renders a page
	SpinnerGlobe
)

// Spinner animates a one-line progress indicator on a writer.
type Spinner struct {
	style    SpinnerStyle
	frame    int
	interval time.Duration
}

// NewSpinner creates a new spinner with the given style.
func NewSpinner(style SpinnerStyle) *Spinner {
	s := &Spinner{style: style, interval: 80 * time.Millisecond}
	if style == SpinnerGlobe {
		s.interval = 150 * time.Millisecond
	}
	return s
}

// Frame returns the current animation frame.
func (s *Spinner) Frame() string {
	frames := s.frames()
	return frames[s.frame%len(frames)]
}

// Next advances to the following frame and returns it.
func (s *Spinner) Next() string {
	s.frame++
	return s.Frame()
}

func (s *Spinner) frames() []string {
	switch s.style {
	case SpinnerGlobe:
		return []string{"◐", "◓", "◑", "◒"}
	default:
		return []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	}
}

// Start draws frames followed by label on w until the returned stop
// function is called. Stop erases the line and waits for the animation
// goroutine to exit; calling it more than once is safe.
func (s *Spinner) Start(w io.Writer, label string) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	line := func() string { return s.Frame() + " " + label }
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		fmt.Fprintf(w, "\r%s", line())
		for {
			select {
			case <-done:
				fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", StringWidth(line())))
				return
			case <-ticker.C:
				s.Next()
				fmt.Fprintf(w, "\r%s", line())
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}
