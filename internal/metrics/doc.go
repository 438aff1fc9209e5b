// Package metrics provides the observability hooks for manifest builds and
// slug resolution.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no call site needs a nil check:
//
//	b := manifest.NewBuilder(manifest.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// The serve command registers a PrometheusRecorder and exposes it on /metrics.
package metrics
