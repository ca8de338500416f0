package domain

import "testing"

func TestTextResponse_IsHTML(t *testing.T) {
	tests := []struct {
		name     string
		resp     TextResponse
		expected bool
	}{
		{
			name:     "content type",
			resp:     TextResponse{ContentType: "text/html; charset=utf-8"},
			expected: true,
		},
		{
			name:     "doctype sniffing",
			resp:     TextResponse{Text: "  <!DOCTYPE html><html></html>"},
			expected: true,
		},
		{
			name:     "rss body",
			resp:     TextResponse{ContentType: "application/rss+xml", Text: `<?xml version="1.0"?><rss></rss>`},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.IsHTML(); got != tt.expected {
				t.Errorf("IsHTML() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTextResponse_ResolveURL(t *testing.T) {
	resp := TextResponse{URL: "https://example.com/blog/"}

	if got := resp.ResolveURL("/feed.xml"); got != "https://example.com/feed.xml" {
		t.Errorf("ResolveURL(absolute path) = %q", got)
	}
	if got := resp.ResolveURL("atom.xml"); got != "https://example.com/blog/atom.xml" {
		t.Errorf("ResolveURL(relative) = %q", got)
	}
	if got := resp.ResolveURL("https://other.com/rss"); got != "https://other.com/rss" {
		t.Errorf("ResolveURL(absolute) = %q", got)
	}
}

func TestTextResponse_Document(t *testing.T) {
	resp := TextResponse{Text: `<html><head><title>Blog</title></head></html>`}
	doc, err := resp.Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if title := doc.Find("title").Text(); title != "Blog" {
		t.Errorf("title = %q, want Blog", title)
	}
}
