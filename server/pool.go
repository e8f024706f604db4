package server

import "sync"

// pool is a fixed-size worker pool. Each worker takes one job at a time,
// so the pool size bounds how many connections are handled concurrently;
// when every worker is busy the accept loop blocks on submit, which is
// the backpressure model for this server.
type pool struct {
	jobs chan func()
	wg   sync.WaitGroup
}

func newPool(size int) *pool {
	if size < 1 {
		size = 1
	}

	p := &pool{jobs: make(chan func())}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

func (p *pool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		job()
	}
}

// submit hands a job to the next free worker, blocking until one is
// available. Must not be called after stop.
func (p *pool) submit(job func()) {
	p.jobs <- job
}

// stop lets in-flight jobs finish and waits for every worker to exit.
func (p *pool) stop() {
	close(p.jobs)
	p.wg.Wait()
}
