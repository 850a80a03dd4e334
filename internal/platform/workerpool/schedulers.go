// internal/platform/workerpool/schedulers.go
package workerpool

// FIFOScheduler no reordena: las tareas salen en el orden de entrada.
// It is the default, so hosts are processed in host-list order.
type FIFOScheduler struct{}

// NewFIFOScheduler crea un scheduler FIFO.
func NewFIFOScheduler() *FIFOScheduler {
	return &FIFOScheduler{}
}

// Schedule retorna tasks en el orden original.
func (s *FIFOScheduler) Schedule(tasks []Task) []Task {
	scheduled := make([]Task, len(tasks))
	copy(scheduled, tasks)
	return scheduled
}

func (s *FIFOScheduler) Name() string {
	return "fifo"
}
