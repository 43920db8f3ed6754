package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedSink() (*Sink, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewSink(zap.New(core).Sugar()), logs
}

func TestBatchFlushEmitsInRecordingOrder(t *testing.T) {
	sink, logs := newObservedSink()
	batch := sink.NewBatch("test.file")

	batch.Warningf("first %s", "warning")
	batch.Warningf("second %s", "warning")
	require.Equal(t, 2, batch.Len())
	assert.Equal(t, 0, logs.Len(), "nothing emitted until Flush")

	batch.Flush()

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].Message, "first warning")
	assert.Contains(t, entries[1].Message, "second warning")
	assert.Equal(t, 0, batch.Len(), "flush resets the batch")
}

func TestBatchFlushWithNoWarningsIsNoop(t *testing.T) {
	sink, logs := newObservedSink()
	batch := sink.NewBatch("test.file")
	batch.Flush()
	assert.Equal(t, 0, logs.Len())
}

func TestNilBatchIsSafe(t *testing.T) {
	var batch *Batch
	assert.NotPanics(t, func() {
		batch.Warningf("ignored")
		batch.Flush()
	})
	assert.Equal(t, 0, batch.Len())
}

func TestNewBatchOnNilSinkDiscardsWarnings(t *testing.T) {
	var sink *Sink
	batch := sink.NewBatch("test.file")
	batch.Warningf("whatever")
	assert.NotPanics(t, func() { batch.Flush() })
}
