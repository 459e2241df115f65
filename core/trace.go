package core

// TraceEvent captures one capability invocation for an observer.
type TraceEvent struct {
	Step       string `json:"step"`
	Capability string `json:"capability"`
	Output     string `json:"output"`
}

// TraceHook receives a TraceEvent after every capability invocation. Hooks
// are side-effect only: a hook that panics or misbehaves is swallowed and
// never influences the run.
type TraceHook func(TraceEvent)
