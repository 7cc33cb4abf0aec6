package workers

type Workers struct {
	workers []Worker
}

// NewWorkers collects the given workers into a single runnable aggregate.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// WorkerFunc adapts a plain function to the Worker interface.
type WorkerFunc func()

func (f WorkerFunc) Run() { f() }
