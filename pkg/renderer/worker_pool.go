package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/fluidgravity/raychi/pkg/core"
	"github.com/fluidgravity/raychi/pkg/scene"
)

// WorkerPool renders tiles in parallel. Each worker owns a wavefront
// pipeline; all pipelines write into the shared framebuffer, which is safe
// because tiles cover disjoint pixels.
type WorkerPool struct {
	taskQueue   chan *Tile
	resultQueue chan TileStats
	workers     []*worker
	numWorkers  int
	wg          sync.WaitGroup
}

// worker renders tiles pulled from the task queue
type worker struct {
	id          int
	pipeline    *pipeline
	taskQueue   chan *Tile
	resultQueue chan TileStats
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// numWorkers <= 0 uses the CPU count.
func NewWorkerPool(sc *scene.Scene, config Config, camera *Camera, framebuffer []core.Vec3, numTiles, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		// Buffer both queues for all tiles so neither submission nor result
		// delivery ever blocks a worker
		taskQueue:   make(chan *Tile, numTiles),
		resultQueue: make(chan TileStats, numTiles),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &worker{
			id:          i,
			pipeline:    newPipeline(sc, config, camera, framebuffer),
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, w := range wp.workers {
		wp.wg.Add(1)
		go w.run(ctx, &wp.wg)
	}
}

// Stop closes the task queue and waits for workers to finish
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// Submit queues a tile for rendering
func (wp *WorkerPool) Submit(tile *Tile) {
	wp.taskQueue <- tile
}

// Results returns the channel of completed tile statistics
func (wp *WorkerPool) Results() <-chan TileStats {
	return wp.resultQueue
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case tile, ok := <-w.taskQueue:
			if !ok {
				return
			}
			w.resultQueue <- w.pipeline.renderTile(tile)
		}
	}
}
