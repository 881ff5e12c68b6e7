package flush

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var ErrStopped = errors.New("flush pipeline stopped")

// Sink receives units in order. It is only called from the goroutine
// running Pipeline.Run.
type Sink interface {
	OpenPart(name string, store bool) error
	Write(p []byte) error
	FinalizeAndClose() error
}

// Pipeline is unbounded FIFO between one producer calling Enqueue and one
// consumer running Run. Processing of terminal unit stops the pipeline and
// finalizes the sink.
type Pipeline struct {
	sink Sink
	log  *zap.Logger

	mu     sync.Mutex
	queue  []*Unit
	closed bool // terminal unit accepted
	err    error

	wake    chan struct{}
	done    chan struct{}
	stopped atomic.Bool
	written atomic.Int64
}

func New(sink Sink, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		sink: sink,
		log:  log,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Enqueue appends unit to the queue and never blocks. It fails once the
// terminal unit was accepted or when consumer already failed.
func (p *Pipeline) Enqueue(u *Unit) error {
	p.mu.Lock()
	switch {
	case p.err != nil:
		err := p.err
		p.mu.Unlock()
		return err
	case p.closed:
		p.mu.Unlock()
		return ErrStopped
	}
	p.queue = append(p.queue, u)
	if u.IsTerminal() {
		p.closed = true
	}
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
	return nil
}

func (p *Pipeline) take() []*Unit {
	p.mu.Lock()
	defer p.mu.Unlock()

	batch := p.queue
	p.queue = nil
	return batch
}

func (p *Pipeline) fail(err error) error {
	p.mu.Lock()
	if p.err == nil {
		p.err = err
	}
	p.mu.Unlock()
	return err
}

// Run consumes units until terminal unit is processed, sink fails or ctx is
// cancelled. It must be called exactly once.
func (p *Pipeline) Run(ctx context.Context) error {
	defer close(p.done)

	p.log.Debug("Flush pipeline started")
	for {
		batch := p.take()
		if len(batch) == 0 {
			select {
			case <-ctx.Done():
				return p.fail(ctx.Err())
			case <-p.wake:
			}
			continue
		}
		for _, u := range batch {
			if err := ctx.Err(); err != nil {
				return p.fail(err)
			}
			if u.IsTerminal() {
				p.stopped.Store(true)
				if err := p.sink.FinalizeAndClose(); err != nil {
					return p.fail(fmt.Errorf("unable to finalize output: %w", err))
				}
				p.log.Debug("Flush pipeline finished", zap.Int64("bytes", p.written.Load()))
				return nil
			}
			if err := p.write(u); err != nil {
				return p.fail(err)
			}
		}
	}
}

func (p *Pipeline) write(u *Unit) error {
	if name, store, ok := u.Part(); ok {
		p.log.Debug("Opening part", zap.String("name", name), zap.Bool("store", store))
		if err := p.sink.OpenPart(name, store); err != nil {
			return fmt.Errorf("unable to open part %s: %w", name, err)
		}
	}
	if u.Len() == 0 {
		return nil
	}
	if err := p.sink.Write(u.Data()); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	p.written.Add(int64(u.Len()))
	return nil
}

// Stopped reports whether terminal unit was processed.
func (p *Pipeline) Stopped() bool {
	return p.stopped.Load()
}

// Err returns consumer error, if any.
func (p *Pipeline) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Done is closed when Run returns.
func (p *Pipeline) Done() <-chan struct{} {
	return p.done
}

// Written returns number of bytes handed to the sink so far.
func (p *Pipeline) Written() int64 {
	return p.written.Load()
}
