package domain

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     LinkState
		to       LinkState
		expected bool
	}{
		{name: "untracked to loading", from: "", to: LinkLoading, expected: true},
		{name: "untracked to processed by url shape", from: "", to: LinkProcessed, expected: true},
		{name: "untracked to unknown skips loading", from: "", to: LinkUnknown, expected: false},
		{name: "loading to processed", from: LinkLoading, to: LinkProcessed, expected: true},
		{name: "loading to unknown", from: LinkLoading, to: LinkUnknown, expected: true},
		{name: "loading to unloadable", from: LinkLoading, to: LinkUnloadable, expected: true},
		{name: "processed is final", from: LinkProcessed, to: LinkLoading, expected: false},
		{name: "processed cannot become unknown", from: LinkProcessed, to: LinkUnknown, expected: false},
		{name: "unknown can be loaded again", from: LinkUnknown, to: LinkLoading, expected: true},
		{name: "invalid stays invalid", from: LinkInvalid, to: LinkInvalid, expected: true},
		{name: "unsupported state", from: LinkState("bogus"), to: LinkLoading, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.expected {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestLinkState_IsTerminal(t *testing.T) {
	for _, state := range []LinkState{LinkInvalid, LinkProcessed, LinkUnknown, LinkUnloadable} {
		if !state.IsTerminal() {
			t.Errorf("%q should be terminal", state)
		}
	}
	if LinkLoading.IsTerminal() {
		t.Error("loading should not be terminal")
	}
}

func TestInvalid(t *testing.T) {
	status := Invalid(ErrEmptyURL)
	if status.State != LinkInvalid || status.Error != ErrEmptyURL {
		t.Errorf("Invalid() = %+v", status)
	}
	if Status(LinkUnknown).Error != "" {
		t.Error("Status() should not carry an error code")
	}
}
