// ABOUTME: Candidate domain model is a URL classified as a known content source
// ABOUTME: Holds the source name, display title and the fetched document if any

package domain

// SourceName identifies a recognizer in the source registry
type SourceName string

// Candidate is a link recognized by one of the sources
type Candidate struct {
	// Source is the recognizer that claimed the link
	Source SourceName

	// URL is the candidate URL (final URL when it was fetched)
	URL string

	// Title is the human-readable title shown in previews
	Title string

	// Text is the fetched document, nil for URL-shape matches
	Text *TextResponse
}
