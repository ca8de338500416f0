// ABOUTME: HTTP-backed download task with a shared abort switch
// ABOUTME: Every fetch of a task is cancelled at once by AbortAll

package download

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"digests-preview/core/domain"
	coreerrors "digests-preview/core/errors"
	"digests-preview/core/interfaces"
)

const defaultMaxBodyBytes = 5 * 1024 * 1024

// Options tune every task built by a factory
type Options struct {
	// RequestsPerSecond paces fetches of one task, 0 disables pacing
	RequestsPerSecond float64

	// Burst is the limiter burst, at least 1
	Burst int

	// MaxBodyBytes truncates larger documents
	MaxBodyBytes int64
}

// Task implements interfaces.DownloadTask over an HTTPClient
type Task struct {
	client  interfaces.HTTPClient
	limiter *rate.Limiter
	maxBody int64
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewTask creates a task that is not aborted yet
func NewTask(client interfaces.HTTPClient, opts Options) *Task {
	ctx, cancel := context.WithCancel(context.Background())
	t := &Task{
		client:  client,
		maxBody: opts.MaxBodyBytes,
		ctx:     ctx,
		cancel:  cancel,
	}
	if t.maxBody <= 0 {
		t.maxBody = defaultMaxBodyBytes
	}
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return t
}

// NewFactory returns a factory of independent tasks sharing one client
func NewFactory(client interfaces.HTTPClient, opts Options) interfaces.DownloadTaskFactory {
	return func() interfaces.DownloadTask {
		return NewTask(client, opts)
	}
}

// Text fetches url. Non-2xx responses are returned with OK set to false.
func (t *Task) Text(ctx context.Context, url string) (*domain.TextResponse, error) {
	if t.ctx.Err() != nil {
		return nil, &coreerrors.AbortedError{URL: url}
	}

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(t.ctx, cancel)
	defer stop()

	if t.limiter != nil {
		if err := t.limiter.Wait(reqCtx); err != nil {
			return nil, t.fail(url, err)
		}
	}

	resp, err := t.client.Get(reqCtx, url)
	if err != nil {
		return nil, t.fail(url, err)
	}
	defer resp.Body().Close()

	contentType := resp.Header("Content-Type")
	reader, err := charset.NewReader(io.LimitReader(resp.Body(), t.maxBody), contentType)
	if err != nil {
		return nil, t.fail(url, err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, t.fail(url, err)
	}
	if t.ctx.Err() != nil {
		return nil, &coreerrors.AbortedError{URL: url}
	}

	finalURL := resp.URL()
	if finalURL == "" {
		finalURL = url
	}
	status := resp.StatusCode()
	return &domain.TextResponse{
		URL:         finalURL,
		OK:          status >= http.StatusOK && status < http.StatusMultipleChoices,
		Status:      status,
		ContentType: contentType,
		Text:        string(body),
	}, nil
}

// AbortAll cancels every pending and future fetch of the task
func (t *Task) AbortAll() {
	t.cancel()
}

// fail reports an abort when the task was cancelled, the transport error otherwise
func (t *Task) fail(url string, err error) error {
	if t.ctx.Err() != nil {
		return &coreerrors.AbortedError{URL: url}
	}
	return fmt.Errorf("download %s: %w", url, err)
}
