// ABOUTME: Link normalizer turns raw user input into an absolute URL
// ABOUTME: Adds a scheme to bare hosts and forces HTTPS for known secure hosts

package normalize

import (
	"net/url"
	"regexp"
	"strings"

	"digests-preview/core/domain"
	coreerrors "digests-preview/core/errors"
)

const (
	httpPrefix  = "http://"
	httpsPrefix = "https://"
)

// AlwaysHTTPS matches hosts (without scheme) that must never be fetched over plain HTTP
var AlwaysHTTPS = []*regexp.Regexp{
	regexp.MustCompile(`^twitter\.com/`),
}

var schemePrefix = regexp.MustCompile(`^\w+:`)

// Normalizer normalizes links with a fixed set of always-HTTPS patterns
type Normalizer struct {
	secure []*regexp.Regexp
}

// New creates a normalizer. Without patterns it uses AlwaysHTTPS.
func New(secure ...*regexp.Regexp) *Normalizer {
	if len(secure) == 0 {
		secure = AlwaysHTTPS
	}
	return &Normalizer{secure: secure}
}

var defaultNormalizer = New()

// Normalize normalizes raw with the default patterns
func Normalize(raw string) (string, error) {
	return defaultNormalizer.Normalize(raw)
}

// Normalize returns the absolute URL for raw or a *errors.ValidationError
// carrying domain.ErrEmptyURL or domain.ErrInvalidURL.
func (n *Normalizer) Normalize(raw string) (string, error) {
	link := strings.TrimSpace(raw)
	if link == "" {
		return "", invalid(domain.ErrEmptyURL, "link is empty")
	}

	switch {
	case strings.HasPrefix(link, httpPrefix):
		methodLess := strings.TrimPrefix(link, httpPrefix)
		if n.isSecure(methodLess) {
			link = httpsPrefix + methodLess
		}
	case strings.HasPrefix(link, httpsPrefix):
	case schemePrefix.MatchString(link):
		return "", invalid(domain.ErrInvalidURL, "unsupported scheme")
	case n.isSecure(link):
		link = httpsPrefix + link
	default:
		link = httpPrefix + link
	}

	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" {
		return "", invalid(domain.ErrInvalidURL, "link is not an absolute URL")
	}
	return link, nil
}

func (n *Normalizer) isSecure(methodLess string) bool {
	for _, pattern := range n.secure {
		if pattern.MatchString(methodLess) {
			return true
		}
	}
	return false
}

func invalid(code domain.LinkError, message string) error {
	return &coreerrors.ValidationError{Field: "url", Message: message, Code: code}
}
