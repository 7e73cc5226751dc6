package async

import (
	"context"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/utils/apperr"
)

// Job is a handler running in the background
type Job struct {
	name string
	done chan struct{}
	err  error
}

// Done is closed when the handler has returned
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Err returns the error of the handler. It is nil until Done is closed.
func (j *Job) Err() error {
	select {
	case <-j.done:
		return j.err
	default:
		return nil
	}
}

// Wait blocks until the job finishes or ctx is done. Only the handler's
// error is returned; giving up on the wait is not an error of the job.
func (j *Job) Wait(ctx context.Context) error {
	select {
	case <-j.done:
		return j.err
	case <-ctx.Done():
		return nil
	}
}

// Dispatch runs handler in a new goroutine, detached from the cancellation
// of ctx so that work started by an HTTP request outlives the response.
// Errors and recovered panics are reported through apperr with the job
// name attached.
func Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error) *Job {
	newCtx := newBackgroundContext(ctx, name)
	job := &Job{name: name, done: make(chan struct{})}

	go func() {
		defer close(job.done)
		defer func() {
			if r := recover(); r != nil {
				job.err = goerr.New("panic in background job",
					goerr.V("job", name),
					goerr.V("recover", r),
					goerr.V("stack", string(debug.Stack())))
				apperr.Handle(newCtx, job.err)
			}
		}()

		if err := handler(newCtx); err != nil {
			job.err = goerr.Wrap(err, "background job failed", goerr.V("job", name))
			apperr.Handle(newCtx, job.err)
		}
	}()

	return job
}

// newBackgroundContext creates a new background context preserving the
// logger and the request ID
func newBackgroundContext(ctx context.Context, name string) context.Context {
	newCtx := context.Background()

	if logger := ctxlog.From(ctx); logger != nil {
		newCtx = ctxlog.With(newCtx, logger.With("job", name))
	}

	if reqID := middleware.GetReqID(ctx); reqID != "" {
		newCtx = context.WithValue(newCtx, middleware.RequestIDKey, reqID)
	}

	return newCtx
}
