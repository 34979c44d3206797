// Package metrics provides shared helpers for tagging StatsD metrics.
package metrics

import (
	"time"

	obserrors "github.com/cataworks/cata-api/internal/observability/errors"
	"github.com/cataworks/cata-api/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// RenderMetric captures the outcome of a catalog render for emission.
type RenderMetric struct {
	Products  int
	Watermark bool
	Duration  time.Duration
	Err       error
}

// EmitRender emits standardised catalog render metrics.
func EmitRender(sink statsd.Sink, in RenderMetric) {
	if sink == nil {
		return
	}

	result := ResultSuccess
	if in.Err != nil {
		result = ResultError
	}

	tags := map[string]string{
		"result":    result,
		"watermark": boolTag(in.Watermark),
	}
	if in.Err != nil {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("render.completed", 1, tags)
	if in.Err == nil && in.Products > 0 {
		sink.Count("render.products", int64(in.Products), CloneTags(tags))
	}
	if in.Duration > 0 {
		sink.Timing("render.duration", in.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func boolTag(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
