package framework

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapturingLoggerAccumulatesMessages(t *testing.T) {
	var l CapturingLogger
	l.Printf("first %d", 1)
	l.Printf("second")

	output := l.Output()
	require.Equal(t, 2, len(output))
	assert.Equal(t, "first 1", output[0].Message)
	assert.Equal(t, "second", output[1].Message)
	assert.False(t, output[0].Time.IsZero())
}

func TestCapturedOutputDumpUsesPrefix(t *testing.T) {
	var l CapturingLogger
	l.Printf("hello")

	var buf bytes.Buffer
	l.Output().Dump(&buf, "DEBUG ")
	assert.Contains(t, buf.String(), "DEBUG [")
	assert.Contains(t, buf.String(), "] hello\n")
}

func TestLineWriterSplitsStreamIntoLines(t *testing.T) {
	var l CapturingLogger
	w := NewLineWriter(&l)

	_, err := w.Write([]byte("one\ntwo\nthree"))
	require.NoError(t, err)
	_, err = w.Write([]byte(" and a half\n"))
	require.NoError(t, err)

	output := l.Output()
	require.Equal(t, 3, len(output))
	assert.Equal(t, "one", output[0].Message)
	assert.Equal(t, "two", output[1].Message)
	assert.Equal(t, "three and a half", output[2].Message)
}

func TestLineWriterFlushEmitsPartialLine(t *testing.T) {
	var l CapturingLogger
	w := NewLineWriter(&l)

	_, err := w.Write([]byte("no newline yet"))
	require.NoError(t, err)
	assert.Equal(t, 0, len(l.Output()))

	w.Flush()
	output := l.Output()
	require.Equal(t, 1, len(output))
	assert.Equal(t, "no newline yet", output[0].Message)
}
