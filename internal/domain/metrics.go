package domain

import "time"

// FetchKind labels which remote document a fetch asked for.
type FetchKind string

const (
	// FetchKindDirectory is GET providers.json.
	FetchKindDirectory FetchKind = "directory"
	// FetchKindDescriptor is GET {id}.json.
	FetchKindDescriptor FetchKind = "descriptor"
)

// FetchStatus labels the outcome of a fetch.
type FetchStatus string

const (
	FetchStatusSuccess  FetchStatus = "success"
	FetchStatusError    FetchStatus = "error"
	FetchStatusNotFound FetchStatus = "not_found"
	FetchStatusCanceled FetchStatus = "canceled"
)

// FetchStatusFrom maps a fetch error onto its metric label.
func FetchStatusFrom(err error) FetchStatus {
	if err == nil {
		return FetchStatusSuccess
	}
	code, _ := CodeFrom(err)
	switch code {
	case CodeNotFound:
		return FetchStatusNotFound
	case CodeCanceled:
		return FetchStatusCanceled
	default:
		return FetchStatusError
	}
}

// FetchMetric captures one remote fetch.
type FetchMetric struct {
	Kind     FetchKind
	Status   FetchStatus
	Duration time.Duration
}

// Metrics records client and view activity.
type Metrics interface {
	ObserveFetch(metric FetchMetric)
	ObserveStaleResponse(slot string)
	ObserveNavigation(route string)
	ObserveTransition(from, to string)
}

// NoopMetrics discards all observations.
type NoopMetrics struct{}

func (NoopMetrics) ObserveFetch(FetchMetric)         {}
func (NoopMetrics) ObserveStaleResponse(string)      {}
func (NoopMetrics) ObserveNavigation(string)         {}
func (NoopMetrics) ObserveTransition(string, string) {}
