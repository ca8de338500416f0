// ABOUTME: Output of a resolved preview as text or JSON
// ABOUTME: Also dumps recorded Prometheus metrics in the text exposition format

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"digests-preview/core/domain"
	"digests-preview/core/preview"
	"digests-preview/pkg/utils/html"
)

type linkResult struct {
	URL   string           `json:"url"`
	State domain.LinkState `json:"state"`
	Error domain.LinkError `json:"error,omitempty"`
}

type candidateResult struct {
	Source domain.SourceName `json:"source"`
	URL    string            `json:"url"`
	Title  string            `json:"title"`
}

type postResult struct {
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Intro       string     `json:"intro,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

type result struct {
	URLError   domain.LinkError  `json:"url_error,omitempty"`
	Links      []linkResult      `json:"links"`
	Candidates []candidateResult `json:"candidates"`
	Selected   string            `json:"selected,omitempty"`
	Posts      []postResult      `json:"posts"`
}

func snapshot(e *preview.Engine) result {
	links := e.Links().Get()
	r := result{
		URLError:   e.URLError().Get(),
		Links:      make([]linkResult, 0, links.Len()),
		Candidates: []candidateResult{},
		Selected:   e.Selected().Get(),
		Posts:      []postResult{},
	}
	for _, url := range links.Keys() {
		status, _ := links.Get(url)
		r.Links = append(r.Links, linkResult{URL: url, State: status.State, Error: status.Error})
	}
	for _, c := range e.Candidates().Get() {
		r.Candidates = append(r.Candidates, candidateResult{Source: c.Source, URL: c.URL, Title: c.Title})
	}
	for _, p := range e.Posts().Get() {
		post := postResult{Title: p.Title, URL: p.URL, Intro: p.Intro}
		if !p.PublishedAt.IsZero() {
			published := p.PublishedAt
			post.PublishedAt = &published
		}
		r.Posts = append(r.Posts, post)
	}
	return r
}

func writeJSON(w io.Writer, r result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeText(w io.Writer, r result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if r.URLError != "" {
		fmt.Fprintf(tw, "error:\t%s\n", r.URLError)
	}

	fmt.Fprintln(tw, "LINKS")
	for _, l := range r.Links {
		state := string(l.State)
		if l.Error != "" {
			state += " (" + string(l.Error) + ")"
		}
		fmt.Fprintf(tw, "  %s\t%s\n", l.URL, state)
	}

	fmt.Fprintln(tw, "CANDIDATES")
	for _, c := range r.Candidates {
		marker := " "
		if c.URL == r.Selected {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%s\n", marker, c.Source, c.Title, c.URL)
	}

	fmt.Fprintln(tw, "POSTS")
	for _, p := range r.Posts {
		date := ""
		if p.PublishedAt != nil {
			date = p.PublishedAt.Format(time.DateOnly)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", date, html.Truncate(p.Title, 80), p.URL)
	}

	return tw.Flush()
}

func writeMetrics(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
