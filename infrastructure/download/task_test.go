package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "digests-preview/core/errors"
	"digests-preview/infrastructure/http/standard"
)

func newClient() *standard.StandardHTTPClient {
	return standard.NewStandardHTTPClient(5*time.Second, standard.WithMaxRetries(1))
}

func TestTask_Text_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><title>Hi</title></html>"))
	}))
	defer server.Close()

	task := NewTask(newClient(), Options{})
	resp, err := task.Text(context.Background(), server.URL+"/page")
	require.NoError(t, err)

	assert.True(t, resp.OK)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, server.URL+"/page", resp.URL)
	assert.Equal(t, "text/html; charset=utf-8", resp.ContentType)
	assert.Equal(t, "<html><title>Hi</title></html>", resp.Text)
}

func TestTask_Text_NotOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("missing"))
	}))
	defer server.Close()

	resp, err := NewTask(newClient(), Options{}).Text(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, resp.OK)
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestTask_Text_FollowsRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("moved"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	resp, err := NewTask(newClient(), Options{}).Text(context.Background(), server.URL+"/old")
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/new", resp.URL)
	assert.Equal(t, "moved", resp.Text)
}

func TestTask_Text_DecodesCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=iso-8859-1")
		w.Write([]byte{'c', 'a', 'f', 0xe9})
	}))
	defer server.Close()

	resp, err := NewTask(newClient(), Options{}).Text(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "café", resp.Text)
}

func TestTask_Text_TruncatesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("0123456789"))
	}))
	defer server.Close()

	resp, err := NewTask(newClient(), Options{MaxBodyBytes: 4}).Text(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "0123", resp.Text)
}

func TestTask_AbortAll_CancelsPending(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	task := NewTask(newClient(), Options{})
	errCh := make(chan error, 1)
	go func() {
		_, err := task.Text(context.Background(), server.URL)
		errCh <- err
	}()

	<-started
	task.AbortAll()

	select {
	case err := <-errCh:
		require.Error(t, err)
		assert.True(t, coreerrors.IsAborted(err), "got %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("aborted fetch did not return")
	}
}

func TestTask_AbortAll_RejectsLaterFetches(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	task := NewTask(newClient(), Options{})
	task.AbortAll()

	_, err := task.Text(context.Background(), server.URL)
	assert.True(t, coreerrors.IsAborted(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestTask_CallerCancelIsNotAbort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTask(newClient(), Options{}).Text(ctx, server.URL)
	require.Error(t, err)
	assert.False(t, coreerrors.IsAborted(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewFactory_TasksAreIndependent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	factory := NewFactory(newClient(), Options{RequestsPerSecond: 100, Burst: 2})
	first := factory()
	second := factory()
	first.AbortAll()

	_, err := first.Text(context.Background(), server.URL)
	assert.True(t, coreerrors.IsAborted(err))

	resp, err := second.Text(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
}
