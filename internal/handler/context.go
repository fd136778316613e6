package handler

type ContextKey string

var (
	ActivityCtxKey ContextKey = "activity"
	ShiftCtxKey    ContextKey = "shift"
	AgentCtxKey    ContextKey = "agent"
	SessionCtxKey  ContextKey = "session"
)
