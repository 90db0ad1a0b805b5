package polyglot

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoAnswer is returned when the prompt input is closed before an answer.
var ErrNoAnswer = errors.New("confirm: input closed before an answer was given")

// Confirmer decides whether a stale key may be deleted.
type Confirmer interface {
	ConfirmDeletion(ctx context.Context, key string) (bool, error)
}

// StdinConfirmer asks on the terminal. Deletion is the default: any answer
// other than "n" or "N", including an empty line, confirms.
type StdinConfirmer struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewConfirmerWithIO creates a StdinConfirmer reading answers from r and
// writing prompts to w.
// The reader is shared between prompts so buffered input is not lost.
func NewConfirmerWithIO(r io.Reader, w io.Writer) *StdinConfirmer {
	return &StdinConfirmer{reader: bufio.NewReader(r), writer: w}
}

func (c *StdinConfirmer) ConfirmDeletion(ctx context.Context, key string) (bool, error) {
	fmt.Fprintf(c.writer, Msg("prompt_delete"), key)

	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)

	go func() {
		line, err := c.reader.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		ch <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			if errors.Is(r.err, io.EOF) {
				return false, ErrNoAnswer
			}
			return false, r.err
		}
		answer := strings.TrimSpace(r.line)
		return answer != "n" && answer != "N", nil
	}
}

// AutoConfirmer confirms every deletion without asking.
type AutoConfirmer struct{}

func (AutoConfirmer) ConfirmDeletion(_ context.Context, _ string) (bool, error) {
	return true, nil
}

// decisionMemo remembers the answer for each key so a key found in several
// locale files is asked about only once per run.
type decisionMemo struct {
	confirmer Confirmer
	decided   map[string]bool
}

func newDecisionMemo(c Confirmer) *decisionMemo {
	return &decisionMemo{confirmer: c, decided: make(map[string]bool)}
}

func (m *decisionMemo) shouldDelete(ctx context.Context, key string) (bool, error) {
	if ok, seen := m.decided[key]; seen {
		return ok, nil
	}
	ok, err := m.confirmer.ConfirmDeletion(ctx, key)
	if err != nil {
		return false, err
	}
	m.decided[key] = ok
	return ok, nil
}
