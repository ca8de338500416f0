package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digests-preview/core/domain"
)

const pageBody = `<!doctype html>
<html><head>
<title>Home</title>
<link rel="alternate" type="application/rss+xml" href="/feed.xml">
</head><body>Hello</body></html>`

const feedBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>Home Feed</title>
<link>https://example.com/</link>
<item>
<title>Hello again</title>
<link>https://example.com/hello</link>
<guid>hello</guid>
<description>First words</description>
<pubDate>Tue, 05 Mar 2024 10:30:00 +0000</pubDate>
</item>
</channel></rss>`

func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/feed.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		_, _ = w.Write([]byte(feedBody))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(pageBody))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("PREVIEW_LOG_LEVEL", "error")
	t.Setenv("PREVIEW_METRICS_ENABLED", "false")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_DiscoversFeedFromPage(t *testing.T) {
	server := newSite(t)

	out, _, err := execute(t, "--json", server.URL+"/")
	require.NoError(t, err)

	var r result
	require.NoError(t, json.Unmarshal([]byte(out), &r))

	assert.Empty(t, r.URLError)
	require.Len(t, r.Links, 2)
	assert.Equal(t, linkResult{URL: server.URL + "/", State: domain.LinkUnknown}, r.Links[0])
	assert.Equal(t, linkResult{URL: server.URL + "/feed.xml", State: domain.LinkProcessed}, r.Links[1])

	require.Len(t, r.Candidates, 1)
	assert.Equal(t, candidateResult{Source: "rss", URL: server.URL + "/feed.xml", Title: "Home Feed"}, r.Candidates[0])
	assert.Equal(t, server.URL+"/feed.xml", r.Selected)

	require.Len(t, r.Posts, 1)
	assert.Equal(t, "Hello again", r.Posts[0].Title)
	assert.Equal(t, "https://example.com/hello", r.Posts[0].URL)
	require.NotNil(t, r.Posts[0].PublishedAt)
	assert.Equal(t, 2024, r.Posts[0].PublishedAt.Year())
}

func TestRootCmd_TextOutput(t *testing.T) {
	server := newSite(t)

	out, _, err := execute(t, server.URL+"/feed.xml")
	require.NoError(t, err)

	assert.Contains(t, out, "CANDIDATES")
	assert.Contains(t, out, "* rss")
	assert.Contains(t, out, "Home Feed")
	assert.Contains(t, out, "2024-03-05")
}

func TestRootCmd_InvalidLink(t *testing.T) {
	out, _, err := execute(t, "--json", "mailto:someone@example.com")
	require.NoError(t, err)

	var r result
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, domain.ErrInvalidURL, r.URLError)
	assert.Empty(t, r.Candidates)
}

func TestRootCmd_Metrics(t *testing.T) {
	server := newSite(t)
	t.Setenv("PREVIEW_METRICS_ENABLED", "true")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{server.URL + "/feed.xml"})
	t.Setenv("PREVIEW_LOG_LEVEL", "error")
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stderr.String(), `preview_link_states_total{state="processed"} 1`)
	assert.Contains(t, stderr.String(), `preview_posts_loaded_total{source="rss"} 1`)
}

func TestRootCmd_RequiresOneArgument(t *testing.T) {
	_, _, err := execute(t)
	assert.Error(t, err)
}
