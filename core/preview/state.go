// ABOUTME: Published state of a preview: the ordered link status map and its derived views
// ABOUTME: Snapshots are immutable, every write produces a new one

package preview

import "digests-preview/core/domain"

// LinkSnapshot is an immutable, insertion-ordered view of link statuses
type LinkSnapshot struct {
	keys     []string
	statuses map[string]domain.LinkStatus
}

// Len returns the number of tracked links
func (s LinkSnapshot) Len() int {
	return len(s.keys)
}

// Keys returns the links in insertion order
func (s LinkSnapshot) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Get returns the status of url
func (s LinkSnapshot) Get(url string) (domain.LinkStatus, bool) {
	status, ok := s.statuses[url]
	return status, ok
}

// First returns the first inserted link
func (s LinkSnapshot) First() (string, domain.LinkStatus, bool) {
	if len(s.keys) == 0 {
		return "", domain.LinkStatus{}, false
	}
	return s.keys[0], s.statuses[s.keys[0]], true
}

// Map copies the statuses into a plain map
func (s LinkSnapshot) Map() map[string]domain.LinkStatus {
	out := make(map[string]domain.LinkStatus, len(s.statuses))
	for k, v := range s.statuses {
		out[k] = v
	}
	return out
}

// with returns a copy where url has status. A new url is appended, an
// existing one keeps its position.
func (s LinkSnapshot) with(url string, status domain.LinkStatus) LinkSnapshot {
	next := LinkSnapshot{
		keys:     s.keys,
		statuses: make(map[string]domain.LinkStatus, len(s.statuses)+1),
	}
	for k, v := range s.statuses {
		next.statuses[k] = v
	}
	if _, ok := s.statuses[url]; !ok {
		next.keys = append(append(make([]string, 0, len(s.keys)+1), s.keys...), url)
	}
	next.statuses[url] = status
	return next
}

// urlError is the aggregate error shown for the whole input: the error of
// the first link when it is invalid or unloadable
func urlError(links LinkSnapshot) domain.LinkError {
	_, status, ok := links.First()
	if !ok {
		return ""
	}
	switch status.State {
	case domain.LinkInvalid:
		return status.Error
	case domain.LinkUnloadable:
		return domain.ErrUnloadable
	}
	return ""
}

// anyLoading reports whether a link is still being fetched
func anyLoading(links LinkSnapshot) bool {
	for _, status := range links.statuses {
		if status.State == domain.LinkLoading {
			return true
		}
	}
	return false
}
