package preview

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/df07/go-progressive-shading/pkg/core"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile       *Tile
	TaskID     int            // Index into the tile list
	PixelStats [][]PixelStats // Shared pixel stats array to write to
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID          int
	scene       *Scene
	camera      *Camera
	config      Config
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a worker pool sized for numTiles tasks
func NewWorkerPool(scene *Scene, camera *Camera, config Config, numTiles int) *WorkerPool {
	numWorkers := config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, numTiles),   // Buffer for all tiles
		resultQueue: make(chan TileResult, numTiles), // Buffer for all results
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			scene:       scene,
			camera:      camera,
			config:      config,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		stats, err := w.renderTile(task)
		w.resultQueue <- TileResult{TaskID: task.TaskID, Stats: stats, Error: err}
	}
}

// renderTile shades every pixel of the task's tile. Tiles have
// non-overlapping bounds, so writing to the shared array is safe.
func (w *Worker) renderTile(task TileTask) (stats RenderStats, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tile %d: panic during shading: %v", task.Tile.ID, r)
		}
	}()

	bounds := task.Tile.Bounds
	sampler := core.NewRandomSampler(task.Tile.Random)
	stats = RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  w.config.SamplesPerPixel,
		MinSamples:  w.config.SamplesPerPixel, // Start with max, will be reduced
	}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			used, dropped := w.samplePixel(i, j, &task.PixelStats[j][i], sampler)
			stats.TotalSamples += used
			stats.DroppedSamples += dropped
			stats.MinSamples = min(stats.MinSamples, used)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, used)
		}
	}
	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats, nil
}

// samplePixel takes samples until the pixel converges or reaches the
// sample budget. Image row 0 is the top of the frame.
func (w *Worker) samplePixel(i, j int, ps *PixelStats, sampler core.Sampler) (used, dropped int) {
	initial := ps.SampleCount
	attempts := 0
	for ps.SampleCount < w.config.SamplesPerPixel && !w.shouldStopSampling(ps) {
		attempts++
		jitter := sampler.Get2D()
		s := (float64(i) + jitter.X) / float64(w.config.Width)
		t := 1 - (float64(j)+jitter.Y)/float64(w.config.Height)
		color := w.scene.Radiance(w.camera.GetRay(s, t), sampler)
		if !color.IsFinite() {
			dropped++
			if attempts >= 2*w.config.SamplesPerPixel {
				break
			}
			continue
		}
		ps.AddSample(color)
	}
	return ps.SampleCount - initial, dropped
}

// shouldStopSampling determines if adaptive sampling should stop based on perceptual relative error
func (w *Worker) shouldStopSampling(ps *PixelStats) bool {
	if w.config.AdaptiveThreshold <= 0 {
		return false
	}

	// Calculate minimum samples as percentage of max samples, but ensure at least 1 sample
	minSamples := max(1, int(float64(w.config.SamplesPerPixel)*w.config.AdaptiveMinSamples))
	if ps.SampleCount < minSamples {
		return false
	}

	mean := ps.LuminanceAccum / float64(ps.SampleCount)
	meanSq := ps.LuminanceSqAccum / float64(ps.SampleCount)
	variance := math.Max(0, meanSq-mean*mean)

	// Avoid division by zero for black pixels
	if mean <= 1e-8 {
		return variance < 1e-6
	}

	return math.Sqrt(variance)/mean < w.config.AdaptiveThreshold
}
