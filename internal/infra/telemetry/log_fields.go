package telemetry

import (
	"time"

	"go.uber.org/zap"
)

const (
	FieldEvent      = "event"
	FieldProvider   = "provider"
	FieldRoute      = "route"
	FieldState      = "state"
	FieldSlot       = "slot"
	FieldToken      = "token"
	FieldDurationMs = "duration_ms"
	FieldSessionID  = "session_id"
	FieldRequestID  = "request_id"
	FieldTraceID    = "trace_id"
	FieldSpanID     = "span_id"
	FieldURL        = "url"
)

const (
	EventFetchStart      = "fetch_start"
	EventFetchSuccess    = "fetch_success"
	EventFetchFailure    = "fetch_failure"
	EventFetchStale      = "fetch_stale"
	EventResolveFallback = "resolve_fallback"
	EventNavigate        = "navigate"
	EventMount           = "mount"
	EventUnmount         = "unmount"
	EventConfigReload    = "config_reload"
)

func EventField(event string) zap.Field {
	return zap.String(FieldEvent, event)
}

func ProviderField(provider string) zap.Field {
	return zap.String(FieldProvider, provider)
}

func RouteField(route string) zap.Field {
	return zap.String(FieldRoute, route)
}

func StateField(state string) zap.Field {
	return zap.String(FieldState, state)
}

func SlotField(slot string) zap.Field {
	return zap.String(FieldSlot, slot)
}

func TokenField(token uint64) zap.Field {
	return zap.Uint64(FieldToken, token)
}

func DurationField(duration time.Duration) zap.Field {
	return zap.Int64(FieldDurationMs, duration.Milliseconds())
}

func SessionIDField(value string) zap.Field {
	return zap.String(FieldSessionID, value)
}

func RequestIDField(value string) zap.Field {
	return zap.String(FieldRequestID, value)
}

func TraceIDField(value string) zap.Field {
	return zap.String(FieldTraceID, value)
}

func SpanIDField(value string) zap.Field {
	return zap.String(FieldSpanID, value)
}

func URLField(value string) zap.Field {
	return zap.String(FieldURL, value)
}
