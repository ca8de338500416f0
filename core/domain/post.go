// ABOUTME: Post domain model represents an entry listed by a content source
// ABOUTME: Provides validation to ensure the post has required fields

package domain

import "time"

// Post is a single entry of a candidate source
type Post struct {
	// OriginID is the identifier assigned by the source (GUID, atom id)
	OriginID string

	// URL links to the full post
	URL string

	// Title is the post headline
	Title string

	// Intro is a plain text summary
	Intro string

	// Full is the HTML content when the source provides it
	Full string

	// Media lists image or enclosure URLs
	Media []string

	// PublishedAt is zero when the source gives no date
	PublishedAt time.Time
}

// IsValid checks if the post can be shown in a preview
func (p *Post) IsValid() bool {
	if p.OriginID == "" && p.URL == "" {
		return false
	}
	return p.Title != "" || p.Intro != "" || p.Full != ""
}
