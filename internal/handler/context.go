package handler

type ContextKey string

var (
	RoleCtxKey    ContextKey = "role"
	SubCtxKey     ContextKey = "sub"
	WorkerInfoCtx ContextKey = "workerInfo"
	ScheduleCtx   ContextKey = "schedule"
)
