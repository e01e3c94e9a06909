// Package lineedit reads interactive command lines with history.
package lineedit

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

// ErrAborted is returned by Prompt when the user presses Ctrl+C.
var ErrAborted = errors.New("prompt aborted")

// line is the subset of *liner.State used by Prompter.
type line interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
	Close() error
}

// Prompter reads command lines with history and emacs-style editing.
type Prompter struct {
	line        line
	historyFile string
	last        string
}

// NewPrompter opens the terminal for line editing. History is loaded from
// historyFile when it exists; an empty path disables persistence.
func NewPrompter(historyFile string) *Prompter {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)
	return newPrompter(l, historyFile)
}

func newPrompter(l line, historyFile string) *Prompter {
	p := &Prompter{line: l, historyFile: historyFile}
	p.loadHistory()
	return p
}

func (p *Prompter) loadHistory() {
	if p.historyFile == "" {
		return
	}
	if f, err := os.Open(p.historyFile); err == nil {
		p.line.ReadHistory(f)
		f.Close()
	}
}

// Prompt shows prompt and returns the entered line. Non-blank lines are
// added to history, skipping immediate repeats.
func (p *Prompter) Prompt(prompt string) (string, error) {
	input, err := p.line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrAborted
		}
		return "", err
	}

	if trimmed := strings.TrimSpace(input); trimmed != "" && trimmed != p.last {
		p.line.AppendHistory(trimmed)
		p.last = trimmed
	}
	return input, nil
}

// SaveHistory writes history to the history file.
func (p *Prompter) SaveHistory() error {
	if p.historyFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p.historyFile), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(p.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := p.line.WriteHistory(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Close saves history and restores the terminal.
func (p *Prompter) Close() error {
	err := p.SaveHistory()
	if cerr := p.line.Close(); err == nil {
		err = cerr
	}
	return err
}
