package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"

	ResultHit  ResultLabel = "hit"
	ResultMiss ResultLabel = "miss"
)

// Recorder defines observability hooks for manifest builds and runtime lookups.
// Implementations must be safe for concurrent use by request handlers.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(result ResultLabel)
	SetManifestSize(documents, aliasKeys int)
	IncAliasCollision()
	IncResolve(result ResultLabel)
	IncPageView(kind string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncBuildOutcome(ResultLabel)                {}
func (NoopRecorder) SetManifestSize(int, int)                   {}
func (NoopRecorder) IncAliasCollision()                         {}
func (NoopRecorder) IncResolve(ResultLabel)                     {}
func (NoopRecorder) IncPageView(string)                         {}
