package tasks

// TaskSchedulerInterface is the scheduler surface used by the main
// application and the HTTP API: lifecycle control, task submission and
// the manual export trigger.
type TaskSchedulerInterface interface {
	Start() error
	Stop()
	EnqueueTask(task TaskInterface) error
	TriggerExport() bool
	ExportRunning() bool
}
