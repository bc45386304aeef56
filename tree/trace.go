package tree

import (
	"io"
	"log/slog"
	"os"
)

type Tracer interface {
	Open(Frame, int)
	Close(Frame, int)
	Error(error)
}

func NoopTracer() Tracer {
	return discardTracer{}
}

type discardTracer struct{}

func (_ discardTracer) Open(_ Frame, _ int) {}

func (_ discardTracer) Close(_ Frame, _ int) {}

func (_ discardTracer) Error(_ error) {}

type stdioTracer struct {
	logger *slog.Logger
}

func Stderr() Tracer {
	return stdioTracer{
		logger: stdioLogger(os.Stderr),
	}
}

func stdioLogger(w io.Writer) *slog.Logger {
	opts := slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	return slog.New(slog.NewTextHandler(w, &opts))
}

func (t stdioTracer) Open(f Frame, depth int) {
	args := []any{
		"element",
		f.Element,
		"line",
		f.Line,
		"depth",
		depth,
	}
	t.logger.Debug("open element", args...)
}

func (t stdioTracer) Close(f Frame, depth int) {
	args := []any{
		"element",
		f.Element,
		"fields",
		f.Value.Len(),
		"depth",
		depth,
	}
	t.logger.Debug("close element", args...)
}

func (t stdioTracer) Error(err error) {
	t.logger.Error("invalid document", "err", err.Error())
}
