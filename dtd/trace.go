package dtd

import (
	"io"
	"log/slog"
	"os"
)

type Tracer interface {
	Declare(string, string)
	Error(string, error)
}

func NoopTracer() Tracer {
	return discardTracer{}
}

type discardTracer struct{}

func (_ discardTracer) Declare(_, _ string) {}

func (_ discardTracer) Error(_ string, _ error) {}

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

func (t stdioTracer) Declare(kind, name string) {
	t.logger.Debug("declaration", "kind", kind, "name", name)
}

func (t stdioTracer) Error(line string, err error) {
	t.logger.Error("invalid declaration", "line", line, "err", err.Error())
}
