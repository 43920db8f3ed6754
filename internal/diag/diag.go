// Package diag provides the plain-text diagnostic sink used across the
// trust-anchor ingestion core. Every component that wants to warn about
// something recoverable (a duplicate certificate, an overridden trust
// flag, an unsupported PEM block) goes through here rather than returning
// an error, matching p11_message in the original parser.
package diag

import (
	"fmt"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// Severity mirrors the handful of message levels the original C code used.
type Severity int

const (
	Info Severity = iota
	Warning
	Critical
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	default:
		return "info"
	}
}

var quiet int32

// Quiet suppresses message emission process-wide. Used by tests that
// exercise reject paths and don't want to clutter test output, mirroring
// p11_message_quiet.
func Quiet() { atomic.StoreInt32(&quiet, 1) }

// Loud re-enables message emission, mirroring p11_message_loud.
func Loud() { atomic.StoreInt32(&quiet, 0) }

func isQuiet() bool { return atomic.LoadInt32(&quiet) != 0 }

// Sink is the logging collaborator a Parser is constructed with. A nil
// *Sink is valid and simply discards everything.
type Sink struct {
	log *zap.SugaredLogger
}

// NewSink wraps a zap.SugaredLogger. Passing nil builds a development
// logger, the same construction cmd/tester used in the teacher repository.
func NewSink(log *zap.SugaredLogger) *Sink {
	if log == nil {
		cfg := zap.NewDevelopmentConfig()
		built, err := cfg.Build()
		if err != nil {
			// zap's development config build essentially cannot fail in
			// practice; fall back to a no-op logger rather than panic.
			built = zap.NewNop()
		}
		log = built.Sugar()
	}
	return &Sink{log: log}
}

// Message emits a basename-prefixed diagnostic line, suppressed while
// Quiet() is in effect.
func (s *Sink) Message(sev Severity, basename, format string, args ...interface{}) {
	if isQuiet() {
		return
	}
	msg := fmt.Sprintf(format, args...)
	line := msg
	if basename != "" {
		line = fmt.Sprintf("%s: %s", basename, msg)
	}
	if s == nil || s.log == nil {
		return
	}
	switch sev {
	case Critical:
		s.log.Error(line)
	case Warning:
		s.log.Warn(line)
	default:
		s.log.Info(line)
	}
}

func (s *Sink) Warningf(basename, format string, args ...interface{}) {
	s.Message(Warning, basename, format, args...)
}

func (s *Sink) Infof(basename, format string, args ...interface{}) {
	s.Message(Info, basename, format, args...)
}

// Batch accumulates the warnings raised while working through one file
// instead of emitting each as it happens, so a caller can look at (or log)
// everything that went wrong in one pass rather than an interleaved
// stream. Mirrors the batch-scoped coalescing index.Batch/Finish apply to
// object-change notifications, applied here to diagnostics instead.
type Batch struct {
	sink     *Sink
	basename string
	errs     *multierror.Error
}

// NewBatch starts a warning batch for one file's worth of diagnostics. A
// nil *Sink is valid; the batch just discards everything on Flush.
func (s *Sink) NewBatch(basename string) *Batch {
	return &Batch{sink: s, basename: basename}
}

// Warningf records a warning in the batch; it isn't emitted until Flush.
func (b *Batch) Warningf(format string, args ...interface{}) {
	if b == nil {
		return
	}
	b.errs = multierror.Append(b.errs, fmt.Errorf(format, args...))
}

// Len reports how many warnings are currently recorded.
func (b *Batch) Len() int {
	if b == nil || b.errs == nil {
		return 0
	}
	return len(b.errs.Errors)
}

// Flush emits every recorded warning through the underlying sink, in
// recording order, and clears the batch so it can be reused.
func (b *Batch) Flush() {
	if b == nil || b.errs == nil {
		return
	}
	for _, err := range b.errs.Errors {
		b.sink.Warningf(b.basename, "%s", err)
	}
	b.errs = nil
}
