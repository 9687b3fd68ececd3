package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when a read is abandoned because its context ended.
var ErrInputCancelled = errors.New("input canceled")

type line struct {
	err  error
	text string
}

// NonBlockingReader reads lines from terminal input without tying a prompt to the
// blocking read. A single goroutine pumps lines into a channel, so a canceled prompt
// never loses the line typed afterwards.
type NonBlockingReader struct {
	reader *bufio.Reader
	lines  chan line
	start  sync.Once
}

// NewNonBlockingReader wraps reader.
func NewNonBlockingReader(reader io.Reader) *NonBlockingReader {
	if reader == nil {
		panic("reader cannot be nil")
	}
	return &NonBlockingReader{
		reader: bufio.NewReader(reader),
		lines:  make(chan line),
	}
}

func (r *NonBlockingReader) pump() {
	for {
		text, err := r.reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && text != "") {
			r.lines <- line{err: err}
			close(r.lines)
			return
		}
		r.lines <- line{text: text}
	}
}

// ReadLine returns the next line without surrounding whitespace. A final line without
// a newline is returned as is; after that every call returns io.EOF.
func (r *NonBlockingReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}
	r.start.Do(func() { go r.pump() })

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case l, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}
