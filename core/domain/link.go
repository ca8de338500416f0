// ABOUTME: Link status model for the preview state machine
// ABOUTME: Defines link states, validation error codes and the allowed transitions

package domain

import "slices"

// LinkState is the resolution state of a single link
type LinkState string

const (
	LinkInvalid    LinkState = "invalid"
	LinkLoading    LinkState = "loading"
	LinkProcessed  LinkState = "processed"
	LinkUnknown    LinkState = "unknown"
	LinkUnloadable LinkState = "unloadable"
)

// LinkError is the validation failure attached to an invalid link
type LinkError string

const (
	ErrEmptyURL   LinkError = "emptyUrl"
	ErrInvalidURL LinkError = "invalidUrl"

	// ErrUnloadable is never stored on a link, it is only reported by the
	// aggregate URL error of a preview when the first link is unloadable
	ErrUnloadable LinkError = "unloadable"
)

// LinkStatus is the value stored for every tracked link.
// Error is only set when State is LinkInvalid.
type LinkStatus struct {
	State LinkState `json:"state"`
	Error LinkError `json:"error,omitempty"`
}

// Invalid builds the status for a link that failed normalization
func Invalid(code LinkError) LinkStatus {
	return LinkStatus{State: LinkInvalid, Error: code}
}

// Status builds a status without an error code
func Status(state LinkState) LinkStatus {
	return LinkStatus{State: state}
}

// IsTerminal reports whether the state ends a resolution
func (s LinkState) IsTerminal() bool {
	return s != LinkLoading && s != ""
}

// LinkTransitions lists the states a link may move to from each state.
// The empty state is a link that is not tracked yet.
var LinkTransitions = map[LinkState][]LinkState{
	"":             {LinkInvalid, LinkLoading, LinkProcessed},
	LinkLoading:    {LinkLoading, LinkProcessed, LinkUnknown, LinkUnloadable},
	LinkProcessed:  {},
	LinkUnknown:    {LinkLoading, LinkProcessed},
	LinkUnloadable: {LinkLoading, LinkProcessed},
	LinkInvalid:    {LinkInvalid},
}

// CanTransition checks if a link may move from one state to another
func CanTransition(from, to LinkState) bool {
	allowed, ok := LinkTransitions[from]
	if !ok {
		return false
	}
	return slices.Contains(allowed, to)
}
