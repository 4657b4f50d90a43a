package scraper

import "strings"

// Outcome classifies where the browser actually landed after navigating.
type Outcome int

const (
	// OutcomeSuccess: the browser is on the intended target.
	OutcomeSuccess Outcome = iota
	// OutcomeNotFound: the platform redirected to its unavailable surface.
	OutcomeNotFound
	// OutcomeChallenge: any other redirect. Deliberately conservative; an
	// unrecognized location is never treated as success.
	OutcomeChallenge
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "challenge"
	}
}

// visit navigates to target, lets the page settle, and classifies the
// resulting location. This comparison is the single decision point behind
// all retry behavior.
func (s *Session) visit(target string) (Outcome, error) {
	if err := s.browser.Navigate(target); err != nil {
		return OutcomeChallenge, err
	}
	s.sleep(s.delays.PageSettle)

	loc, err := s.browser.Location()
	if err != nil {
		return OutcomeChallenge, err
	}
	switch strings.TrimSpace(loc) {
	case strings.TrimSpace(target):
		return OutcomeSuccess, nil
	case unavailableURL:
		return OutcomeNotFound, nil
	default:
		return OutcomeChallenge, nil
	}
}
