package renderer

import (
	"math/rand"
	"runtime"
	"sync"
)

// RowTask represents one scanline of a frame for the worker pool
type RowTask struct {
	Y     int             // Row index in the frame
	Row   []byte          // The row's stride-long region of the frame buffer, owned by this task
	frame *sync.WaitGroup // Barrier of the frame the row belongs to
}

// WorkerPool renders frames by handing rows to long-lived worker goroutines
type WorkerPool struct {
	raytracer  *Raytracer
	taskQueue  chan RowTask
	workers    []*Worker
	numWorkers int
	wg         sync.WaitGroup
	mu         sync.Mutex // serializes frames
	started    bool
	stopped    bool
}

// Worker renders rows taken from the pool's queue
type Worker struct {
	ID        int
	raytracer *Raytracer
	random    *rand.Rand
	taskQueue chan RowTask
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(raytracer *Raytracer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		raytracer:  raytracer,
		taskQueue:  make(chan RowTask, raytracer.camera.Height), // Buffer a full frame of rows
		numWorkers: numWorkers,
	}

	seed := raytracer.config.seed()
	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:        i,
			raytracer: raytracer,
			random:    rand.New(rand.NewSource(seed + int64(i))),
			taskQueue: wp.taskQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	wp.startLocked()
}

func (wp *WorkerPool) startLocked() {
	if wp.started {
		return
	}
	wp.started = true

	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	if !wp.started || wp.stopped {
		return
	}
	wp.stopped = true

	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// RenderFrame splits buf into one region per row, renders the rows in parallel
// and returns once all of them are written. The buffer preconditions are those
// of Raytracer.RenderFrame. It must not be called after Stop.
func (wp *WorkerPool) RenderFrame(buf []byte, stride int) {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	wp.startLocked()

	height := wp.raytracer.camera.Height

	var frame sync.WaitGroup
	frame.Add(height)
	for y := 0; y < height; y++ {
		// Each row region is disjoint, so workers write without locks
		wp.taskQueue <- RowTask{Y: y, Row: rowSlice(buf, y, stride), frame: &frame}
	}
	frame.Wait()
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		w.raytracer.renderRow(task.Y, task.Row, w.random)
		task.frame.Done()
	}
}
