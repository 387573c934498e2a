package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Task does the work for one user and reports how many items it produced.
type Task func(ctx context.Context) (int, error)

type Result struct {
	UserID uuid.UUID
	Count  int
	Err    error
}

type job struct {
	userID uuid.UUID
	task   Task
}

type Pool struct {
	workers int
	tasks   chan job
	wg      sync.WaitGroup
	mu      sync.RWMutex
	rate    <-chan time.Time
	ticker  *time.Ticker
}

func NewPool(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan job, buffer),
	}
}

func (p *Pool) Workers() int {
	if p == nil {
		return 0
	}
	return p.workers
}

// SetRateLimit caps how many tasks start per second across all workers.
// Zero or less removes the limit.
func (p *Pool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
	if rps <= 0 {
		return
	}
	p.ticker = time.NewTicker(time.Second / time.Duration(rps))
	p.rate = p.ticker.C
}

// Submit blocks until a worker or the buffer takes the task, or ctx ends.
func (p *Pool) Submit(ctx context.Context, userID uuid.UUID, t Task) bool {
	if p == nil || t == nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case p.tasks <- job{userID: userID, task: t}:
		return true
	}
}

// Close stops intake. Tasks already queued still run, paced by the rate limit.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

func (p *Pool) stopTicker() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
}

// Run starts the workers. The returned channel is closed once Close has been
// called and every submitted task has finished, or ctx is done.
func (p *Pool) Run(ctx context.Context) <-chan Result {
	out := make(chan Result, p.Workers()*4+1)
	if p == nil {
		close(out)
		return out
	}

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-p.tasks:
					if !ok {
						return
					}
					p.mu.RLock()
					rate := p.rate
					p.mu.RUnlock()
					if rate != nil {
						select {
						case <-ctx.Done():
							return
						case <-rate:
						}
					}
					n, err := j.task(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{UserID: j.userID, Count: n, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		p.stopTicker()
		close(out)
	}()

	return out
}
