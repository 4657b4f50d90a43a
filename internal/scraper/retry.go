package scraper

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Backoff controls the challenge retry loop.
type Backoff struct {
	InitialWait time.Duration
	Multiplier  float64
	// MaxAttempts bounds the loop; a challenge on the last attempt
	// abandons the target.
	MaxAttempts int
	// Jitter adds up to the given fraction of each wait. Zero keeps the
	// wait sequence exact.
	Jitter float64
}

func DefaultBackoff() Backoff {
	return Backoff{
		InitialWait: 10 * time.Second,
		Multiplier:  1.5,
		MaxAttempts: 5,
	}
}

// WaitFor returns the wait before the k-th retry (1-based):
// InitialWait * Multiplier^(k-1), plus jitter when configured.
func (b Backoff) WaitFor(retry int) time.Duration {
	if retry < 1 {
		retry = 1
	}
	wait := float64(b.InitialWait) * math.Pow(b.Multiplier, float64(retry-1))
	if b.Jitter > 0 {
		wait += wait * b.Jitter * rand.Float64()
	}
	return time.Duration(wait)
}

// withRetry wraps one validate -> navigate -> classify -> extract attempt.
// Challenges back off and retry the same target with growing waits, on the
// assumption that an operator clears the interstitial meanwhile. NotFound
// abandons the target immediately.
func (s *Session) withRetry(target string, attempt func() error) error {
	if err := validateTarget(target); err != nil {
		return err
	}

	maxAttempts := s.backoff.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for try := 1; try <= maxAttempts; try++ {
		outcome, err := s.visit(target)
		if err != nil {
			return err
		}

		switch outcome {
		case OutcomeSuccess:
			return attempt()
		case OutcomeNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, target)
		case OutcomeChallenge:
			s.challenges++
			if try == maxAttempts {
				return fmt.Errorf("%w: gave up on %s after %d attempts", ErrChallenge, target, maxAttempts)
			}
			wait := s.backoff.WaitFor(try)
			s.logger.Warn().
				Str("target", target).
				Int("attempt", try).
				Dur("wait", wait).
				Msg("challenge interstitial, backing off")
			s.dumpChallenge(target)
			s.sleep(wait)
		}
	}
	return fmt.Errorf("%w: %s", ErrChallenge, target)
}
