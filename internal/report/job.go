package report

import (
	"context"
	"errors"
	"time"
)

// ErrJobStarted is returned by Start on a job that has already left Idle.
var ErrJobStarted = errors.New("report job already started")

// State is the progress of a report Job.
type State int

const (
	StateIdle State = iota
	StateAwaitingReply
	StateSucceeded
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateAwaitingReply:
		return "awaiting reply"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	}
	return "idle"
}

// Done reports whether s is a terminal state.
func (s State) Done() bool {
	return s == StateSucceeded || s == StateFailed || s == StateCancelled
}

// Requester performs the request/reply exchange. *Client implements it.
type Requester interface {
	RequestExpenseReport(ctx context.Context, doc []byte) (string, bool, error)
}

type outcome struct {
	state State
	path  string
	err   error
}

// Job runs a single report request in the background. It belongs to one
// owner; only the request itself runs on another goroutine and it reports
// back over a channel.
type Job struct {
	requester Requester
	timeout   time.Duration

	state  State
	path   string
	err    error
	cancel context.CancelFunc
	done   chan outcome
}

// NewJob creates an idle job. A zero timeout means no deadline.
func NewJob(r Requester, timeout time.Duration) *Job {
	return &Job{requester: r, timeout: timeout}
}

// Start moves the job to AwaitingReply and issues the request.
func (j *Job) Start(ctx context.Context, doc []byte) error {
	if j.state != StateIdle {
		return ErrJobStarted
	}
	if j.timeout > 0 {
		ctx, j.cancel = context.WithTimeout(ctx, j.timeout)
	} else {
		ctx, j.cancel = context.WithCancel(ctx)
	}
	j.done = make(chan outcome, 1)
	j.state = StateAwaitingReply

	go func() {
		path, ok, err := j.requester.RequestExpenseReport(ctx, doc)
		switch {
		case ctx.Err() != nil:
			j.done <- outcome{state: StateCancelled, err: ctx.Err()}
		case err != nil:
			j.done <- outcome{state: StateFailed, err: err}
		case !ok:
			j.done <- outcome{state: StateSucceeded}
		default:
			j.done <- outcome{state: StateSucceeded, path: path}
		}
	}()
	return nil
}

// Poll collects the result if it has arrived and returns the current state.
// It never blocks.
func (j *Job) Poll() State {
	if j.state != StateAwaitingReply {
		return j.state
	}
	select {
	case o := <-j.done:
		j.finish(o)
	default:
	}
	return j.state
}

// Wait blocks until the job reaches a terminal state or ctx is done. When
// ctx ends first the job is cancelled.
func (j *Job) Wait(ctx context.Context) State {
	if j.state != StateAwaitingReply {
		return j.state
	}
	select {
	case o := <-j.done:
		j.finish(o)
	case <-ctx.Done():
		j.Cancel()
	}
	return j.state
}

// Cancel abandons an outstanding request. A late reply is discarded.
func (j *Job) Cancel() {
	if j.state != StateAwaitingReply {
		return
	}
	j.cancel()
	j.finish(outcome{state: StateCancelled, err: context.Canceled})
}

// State returns the state as of the last Poll, Wait or Cancel.
func (j *Job) State() State { return j.state }

// Path returns the report path of a succeeded job. It is empty when the
// service replied without one.
func (j *Job) Path() string { return j.path }

// Err returns why the job failed or was cancelled.
func (j *Job) Err() error { return j.err }

func (j *Job) finish(o outcome) {
	j.state, j.path, j.err = o.state, o.path, o.err
	if j.cancel != nil {
		j.cancel()
	}
}
