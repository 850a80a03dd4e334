// internal/platform/workerpool/worker_pool.go
package workerpool

import (
	"context"
	"sync"
	"time"

	"netsql/internal/platform/logx"
)

// Task representa una tarea a ejecutar en el worker pool.
type Task interface {
	// Execute ejecuta la tarea
	Execute(ctx context.Context) error

	// Name retorna el nombre de la tarea
	Name() string
}

// Scheduler define la estrategia de scheduling.
type Scheduler interface {
	// Schedule ordena las tareas según la estrategia
	Schedule(tasks []Task) []Task

	// Name retorna el nombre del scheduler
	Name() string
}

// TaskResult representa el resultado de una tarea.
type TaskResult struct {
	Task Task

	// Started is false when the context was cancelled before the task
	// was handed to a worker.
	Started  bool
	Error    error
	Duration time.Duration
}

// WorkerPoolConfig configura el worker pool.
type WorkerPoolConfig struct {
	Workers   int
	Scheduler Scheduler
	Logger    logx.Logger
}

// WorkerPool ejecuta lotes de tareas con un número acotado de workers.
// A pool holds no goroutines between Submit calls.
type WorkerPool struct {
	workers   int
	scheduler Scheduler
	logger    logx.Logger
}

// NewWorkerPool crea un nuevo worker pool.
func NewWorkerPool(cfg WorkerPoolConfig) *WorkerPool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = NewFIFOScheduler()
	}
	if cfg.Logger == nil {
		cfg.Logger = logx.New()
	}

	return &WorkerPool{
		workers:   cfg.Workers,
		scheduler: cfg.Scheduler,
		logger:    cfg.Logger.With("component", "worker-pool"),
	}
}

// Submit runs tasks and blocks until every started task returned.
// Results are in schedule order. Once ctx is done no further task starts;
// those tasks come back with Started == false.
func (wp *WorkerPool) Submit(ctx context.Context, tasks []Task) []TaskResult {
	if len(tasks) == 0 {
		return []TaskResult{}
	}

	scheduled := wp.scheduler.Schedule(tasks)
	results := make([]TaskResult, len(scheduled))
	for i, task := range scheduled {
		results[i].Task = task
	}

	wp.logger.Debug("submitting tasks",
		"total", len(scheduled),
		"workers", wp.workers,
		"scheduler", wp.scheduler.Name(),
	)

	queue := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < wp.workers && w < len(scheduled); w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := range queue {
				// select puede elegir queue<-i aunque ctx ya esté cancelado
				if ctx.Err() != nil {
					continue
				}
				results[i] = wp.execute(ctx, id, scheduled[i])
			}
		}(w)
	}

feed:
	for i := range scheduled {
		// Check first so a cancelled context never races a ready worker.
		if ctx.Err() != nil {
			break
		}
		select {
		case queue <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(queue)
	wg.Wait()

	return results
}

// execute ejecuta una tarea individual.
func (wp *WorkerPool) execute(ctx context.Context, workerID int, task Task) TaskResult {
	start := time.Now()
	err := task.Execute(ctx)
	duration := time.Since(start)

	wp.logger.Debug("task completed",
		"worker_id", workerID,
		"task", task.Name(),
		"duration_ms", duration.Milliseconds(),
		"error", err != nil,
	)

	return TaskResult{Task: task, Started: true, Error: err, Duration: duration}
}

// Stats retorna estadísticas del worker pool.
func (wp *WorkerPool) Stats() WorkerPoolStats {
	return WorkerPoolStats{
		Workers:       wp.workers,
		SchedulerName: wp.scheduler.Name(),
	}
}

// WorkerPoolStats contiene estadísticas del worker pool.
type WorkerPoolStats struct {
	Workers       int
	SchedulerName string
}
