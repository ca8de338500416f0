package interfaces

import (
	"context"

	"digests-preview/core/domain"
)

// DownloadTask fetches documents inside one cancellation domain.
// AbortAll cancels every Text call issued by the task, pending or future;
// those calls return an error matching errors.ErrAborted.
type DownloadTask interface {
	// Text fetches url and returns the document. A non-2xx response is not
	// an error, it is reported through TextResponse.OK.
	Text(ctx context.Context, url string) (*domain.TextResponse, error)

	// AbortAll cancels all fetches of this task.
	AbortAll()
}

// DownloadTaskFactory builds a fresh, unaborted task
type DownloadTaskFactory func() DownloadTask
