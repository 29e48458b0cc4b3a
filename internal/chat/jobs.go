package chat

import (
	"context"
	"time"
)

// Job is backend work queued by a handler. Run performs the I/O and may be
// called from any goroutine; the func it returns applies the outcome and
// must be called on the goroutine that owns the Controller. A Job with a
// Delay is a timer: Run should be called once Delay has elapsed.
type Job struct {
	Name  string
	Delay time.Duration
	Run   func() func()
}

// TakeJobs hands over queued jobs and empties the queue.
func (c *Controller) TakeJobs() []Job {
	jobs := c.jobs
	c.jobs = nil
	return jobs
}

// spawn queues work bound to the current navigation epoch. Completions that
// arrive after a navigation are dropped.
func (c *Controller) spawn(name string, delay time.Duration, work func(ctx context.Context) func()) {
	epoch := c.epoch
	ctx := c.ctx
	c.jobs = append(c.jobs, Job{
		Name:  name,
		Delay: delay,
		Run: func() func() {
			apply := work(ctx)
			return func() {
				if c.epoch != epoch {
					c.logger.Debug("dropping stale completion", "job", name, "epoch", epoch)
					return
				}
				if apply != nil {
					apply()
				}
			}
		},
	})
}
