package scraper

import "errors"

// Navigation-level outcomes are the only failures modeled as errors; field
// reads inside a page degrade to empty values instead.
var (
	// ErrAuthentication means the login did not land on the feed. A
	// challenge at login time is indistinguishable from bad credentials,
	// so this aborts the whole run.
	ErrAuthentication = errors.New("authentication failed")

	// ErrInvalidTarget means the target URL is malformed; the target is
	// skipped before any navigation.
	ErrInvalidTarget = errors.New("invalid target url")

	// ErrNotFound means the platform redirected to its unavailable
	// surface; the target is abandoned without retry.
	ErrNotFound = errors.New("target unavailable")

	// ErrChallenge means navigation landed on an unrecognized surface,
	// treated as a human-verification interstitial.
	ErrChallenge = errors.New("verification challenge")
)
