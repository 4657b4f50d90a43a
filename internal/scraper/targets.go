package scraper

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	baseURL        = "https://www.linkedin.com"
	loginURL       = baseURL + "/uas/login"
	feedHomeURL    = baseURL + "/feed/"
	hashtagFeedURL = baseURL + "/feed/hashtag/"
	profileBaseURL = baseURL + "/in/"

	// unavailableURL is where the platform parks navigation to targets
	// that do not exist or are hidden.
	unavailableURL = baseURL + "/in/unavailable/"
)

// HashtagURL builds the feed URL for a hashtag keyword. The keyword is
// query-encoded, so a leading '#' stays part of the keyword instead of
// turning into a URL fragment.
func HashtagURL(tag string) string {
	values := url.Values{}
	values.Set("keywords", strings.TrimSpace(tag))
	return hashtagFeedURL + "?" + values.Encode()
}

// ProfileURL builds the public profile URL for a profile identifier.
func ProfileURL(id string) string {
	return profileBaseURL + strings.TrimSpace(id) + "/"
}

// validateTarget is a syntactic check only; it says nothing about
// reachability. Failing here skips the target before a browser round trip.
func validateTarget(raw string) error {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTarget, raw)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: %s", ErrInvalidTarget, raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: %s", ErrInvalidTarget, raw)
	}
	return nil
}

// profileIDFromURL extracts the profile identifier from a profile link:
// the last path segment, stripped of any query string.
func profileIDFromURL(href string) string {
	if idx := strings.IndexAny(href, "?#"); idx >= 0 {
		href = href[:idx]
	}
	href = strings.TrimRight(href, "/")
	if idx := strings.LastIndex(href, "/"); idx >= 0 {
		return href[idx+1:]
	}
	return href
}

// absoluteURL resolves a possibly relative href against the platform base.
func absoluteURL(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// sanitize strips control characters that the renderer embeds in labels.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 {
			return -1
		}
		return r
	}, s)
}
