package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// traceHandler is a slog.Handler in the shape of the teacher's
// GoogleCloudHandler (cloud.go), retargeted at a plain stderr trace stream
// instead of Cloud Logging severity JSON: there's no log aggregator to ship
// structured severities to from a one-shot CLI process.
type traceHandler struct {
	writer     io.Writer
	level      slog.Level
	extraAttrs map[string]interface{}
}

func newTraceHandler(writer io.Writer, level slog.Level) *traceHandler {
	return &traceHandler{writer: writer, level: level}
}

func (h *traceHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *traceHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := map[string]interface{}{}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})
	for k, v := range h.extraAttrs {
		attrs[k] = v
	}

	entry := map[string]interface{}{
		"level":   r.Level.String(),
		"message": r.Message,
		"time":    time.Now().Format(time.RFC3339Nano),
	}
	for k, v := range attrs {
		entry[k] = v
	}

	return json.NewEncoder(h.writer).Encode(entry)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := *h
	newHandler.extraAttrs = map[string]interface{}{}
	for k, v := range h.extraAttrs {
		newHandler.extraAttrs[k] = v
	}
	for _, a := range attrs {
		newHandler.extraAttrs[a.Key] = a.Value.Any()
	}
	return &newHandler
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return h
}

// printDepthTable writes move.c's DEPTH/MICROS/TOTAL/EVALS/EVALS/S table to
// w, one header line followed by one row per completed iterative-deepening
// iteration.
func printDepthTable(w io.Writer, header bool) func(depth, micros, total int64, evals int, evalsPerSec int64) {
	if header {
		fmt.Fprintln(w, "DEPTH\tMICROS\tTOTAL\tEVALS\tEVALS/S")
	}
	return func(depth, micros, total int64, evals int, evalsPerSec int64) {
		fmt.Fprintf(w, "%d\t%06d\t%06d\t%7d\t%7d\n", depth, micros, total, evals, evalsPerSec)
	}
}
