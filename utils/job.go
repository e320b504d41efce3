package utils

import (
	"context"
	"sync"
	"sync/atomic"
)

// JobStatus is the progress of a single in-flight video transcription.
type JobStatus int32

const (
	StatusPending JobStatus = iota
	StatusExtracting
	StatusTranscribing
	StatusCompleted
	StatusFailed
)

func (s JobStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusExtracting:
		return "extracting"
	case StatusTranscribing:
		return "transcribing"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Job tracks one call started by StartVideoTranscription.
type Job struct {
	status atomic.Int32
	once   sync.Once
	done   chan struct{}
	text   string
	err    error
}

func newJob() *Job {
	return &Job{done: make(chan struct{})}
}

func (j *Job) Status() JobStatus { return JobStatus(j.status.Load()) }

// Done is closed once the job has completed or failed.
func (j *Job) Done() <-chan struct{} { return j.done }

// Result returns the outcome once Done is closed.
func (j *Job) Result() (string, error) {
	<-j.done
	return j.text, j.err
}

// Wait blocks until the job finishes or ctx is done.
func (j *Job) Wait(ctx context.Context) (string, error) {
	select {
	case <-j.done:
		return j.text, j.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (j *Job) setStatus(s JobStatus) { j.status.Store(int32(s)) }

func (j *Job) finish(text string, err error) {
	j.once.Do(func() {
		j.text, j.err = text, err
		if err != nil {
			j.setStatus(StatusFailed)
		} else {
			j.setStatus(StatusCompleted)
		}
		close(j.done)
	})
}
