// Package speech defines the dictation collaborator contract. The board
// engine has no dependency on any particular input device; anything that
// can produce partial and final text can feed a task title.
package speech

import (
	"bufio"
	"io"
	"strings"
)

// Callbacks receives recognition events. OnPartial may fire any number
// of times (including zero) before OnFinal; OnError ends the session.
type Callbacks struct {
	OnPartial func(text string)
	OnFinal   func(text string)
	OnError   func(err error)
}

// Recognizer captures one utterance and reports it through cb.
// Implementations block until the utterance is final or fails.
type Recognizer interface {
	Recognize(cb Callbacks)
}

// LineReader is a Recognizer over an io.Reader: each word read counts as
// a partial, the full line is the final text. It backs `add --dictate`
// on a terminal and gives tests a deterministic recognizer.
type LineReader struct {
	R io.Reader
}

// Recognize reads one line from R.
func (l *LineReader) Recognize(cb Callbacks) {
	scanner := bufio.NewScanner(l.R)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil && cb.OnError != nil {
			cb.OnError(err)
		} else if cb.OnFinal != nil {
			cb.OnFinal("")
		}
		return
	}

	line := strings.TrimSpace(scanner.Text())
	if cb.OnPartial != nil {
		words := strings.Fields(line)
		for i := range words {
			cb.OnPartial(strings.Join(words[:i+1], " "))
		}
	}
	if cb.OnFinal != nil {
		cb.OnFinal(line)
	}
}
