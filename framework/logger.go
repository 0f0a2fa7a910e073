package framework

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the interface for debug output from tests and from harness
// components. It deliberately matches the Printf-style methods of log.Logger.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

// NullLogger returns a Logger that discards all output.
func NullLogger() Logger { return nullLogger{} }

// CapturedMessage is one timestamped line of captured output.
type CapturedMessage struct {
	Time    time.Time
	Message string
}

// CapturedOutput is a transcript of everything a CapturingLogger received.
type CapturedOutput []CapturedMessage

// CapturingLogger accumulates output in memory instead of printing it, so that
// it can be dumped later if the test fails. It is safe for concurrent use;
// the process under test writes to it from a different goroutine than the
// test logic.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

// Output returns a copy of everything captured so far.
func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append(CapturedOutput(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// Dump writes the transcript to dest with each line prefixed, for inclusion in
// failure reports.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n",
			prefix,
			m.Time.Format(timestampFormat),
			m.Message,
		)
	}
}

// LineWriter adapts a Logger to io.Writer, splitting the byte stream into
// lines. It is how the harness captures a child process's output streams.
// A trailing partial line is held back until its newline arrives or Flush is
// called.
type LineWriter struct {
	logger  Logger
	partial bytes.Buffer
	lock    sync.Mutex
}

func NewLineWriter(logger Logger) *LineWriter {
	return &LineWriter{logger: logger}
}

func (w *LineWriter) Write(p []byte) (int, error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.partial.Write(p)
	for {
		data := w.partial.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		w.logger.Printf("%s", string(data[:i]))
		w.partial.Next(i + 1)
	}
	return len(p), nil
}

// Flush logs any buffered partial line.
func (w *LineWriter) Flush() {
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.partial.Len() > 0 {
		w.logger.Printf("%s", w.partial.String())
		w.partial.Reset()
	}
}
