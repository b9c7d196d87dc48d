package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"pinscraper/pkg/logger"
	"pinscraper/pkg/models"
	"pinscraper/pkg/progress"
)

var (
	// ErrBusy is returned by Submit while another run is in flight
	ErrBusy = errors.New("a download is already running")

	// ErrStopped is returned by Submit after Stop
	ErrStopped = errors.New("runner is shutting down")
)

// Pipeline is the unit of work executed for each job
type Pipeline interface {
	Run(ctx context.Context, pageURL string, reporter progress.Reporter) (models.Summary, error)
}

// Closer is implemented by reporters that need a terminal completion signal
type Closer interface {
	Close()
}

// Job is a single pin page submitted for download
type Job struct {
	ID       string
	PinURL   string
	Reporter progress.Reporter
}

// Result represents the outcome of a job
type Result struct {
	Job      Job
	Summary  models.Summary
	Err      error
	Duration time.Duration
}

// Runner executes pipeline jobs on one background goroutine. It holds at
// most one job at a time so the caller stays responsive while a download
// runs, without ever downloading two pages concurrently.
type Runner struct {
	pipeline    Pipeline
	jobQueue    chan Job
	resultQueue chan Result
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	logger      logger.Logger

	mu      sync.Mutex
	busy    bool
	stopped bool
}

// New creates a Runner. Cancelling parent aborts the job in flight.
func New(parent context.Context, pipeline Pipeline, log logger.Logger) *Runner {
	ctx, cancel := context.WithCancel(parent)

	if log == nil {
		log = logger.GetLogger()
	}

	return &Runner{
		pipeline:    pipeline,
		jobQueue:    make(chan Job, 1),
		resultQueue: make(chan Result, 1),
		ctx:         ctx,
		cancel:      cancel,
		logger:      log,
	}
}

// Start launches the worker goroutine
func (r *Runner) Start() {
	logger.LogComponentStart(r.logger, "runner", nil)

	r.wg.Add(1)
	go r.worker()
}

// Stop cancels any job in flight, waits for the worker to exit and closes
// the result channel
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	r.cancel()
	close(r.jobQueue)
	r.wg.Wait()
	close(r.resultQueue)

	logger.LogComponentStop(r.logger, "runner", "stopped")
}

// Submit queues pinURL for download. The reporter receives every status
// line of the run and, if it implements Closer, is closed when the run ends.
func (r *Runner) Submit(pinURL string, reporter progress.Reporter) (Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return Job{}, ErrStopped
	}
	if r.busy {
		return Job{}, ErrBusy
	}

	if reporter == nil {
		reporter = progress.Nop
	}

	job := Job{
		ID:       newJobID(),
		PinURL:   pinURL,
		Reporter: reporter,
	}

	r.busy = true
	r.jobQueue <- job

	r.logger.DebugWithFields("Job submitted to queue", map[string]interface{}{
		"job_id":  job.ID,
		"pin_url": job.PinURL,
	})

	return job, nil
}

// Busy reports whether a job is queued or running
func (r *Runner) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.busy
}

// Results returns the result channel for consuming finished jobs
func (r *Runner) Results() <-chan Result {
	return r.resultQueue
}

func (r *Runner) worker() {
	defer r.wg.Done()

	for job := range r.jobQueue {
		result := r.process(job)

		r.mu.Lock()
		r.busy = false
		r.mu.Unlock()

		// Cancelled runs still deliver their result when there is room, so a
		// caller blocked on Results always wakes up.
		select {
		case r.resultQueue <- result:
			continue
		default:
		}

		select {
		case r.resultQueue <- result:
		case <-r.ctx.Done():
			r.logger.DebugWithFields("Dropping result - previous result unread", map[string]interface{}{
				"job_id": job.ID,
			})
		}
	}
}

// process runs one job and always fires the reporter's completion signal
func (r *Runner) process(job Job) (result Result) {
	start := time.Now()
	result.Job = job

	log := r.logger.WithFields(map[string]interface{}{
		"job_id":  job.ID,
		"pin_url": job.PinURL,
	})

	defer func() {
		if c, ok := job.Reporter.(Closer); ok {
			c.Close()
		}
	}()

	if err := r.ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	log.Info("Job started")

	summary, err := r.pipeline.Run(r.ctx, job.PinURL, job.Reporter)
	result.Summary = summary
	result.Err = err
	result.Duration = time.Since(start)

	fields := map[string]interface{}{
		"found":     summary.Found,
		"succeeded": summary.Succeeded,
		"duration":  result.Duration,
	}
	if err != nil {
		log.WithError(err).WarnWithFields("Job finished with error", fields)
	} else {
		log.InfoWithFields("Job finished", fields)
	}

	return result
}

// newJobID returns a time-ordered identifier for log correlation
func newJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("job-%d", time.Now().UnixNano())
	}
	return id.String()
}
