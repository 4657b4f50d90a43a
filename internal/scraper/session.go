package scraper

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/linscrape/internal/browser"
	"github.com/rs/zerolog"
)

// Credentials are opaque to the session and never logged.
type Credentials struct {
	Email    string
	Password string
}

// Delays control every blocking wait in a session. Tests run with
// near-zero values.
type Delays struct {
	// LoginCooldown is how long a failed login sits before the run aborts,
	// giving a watching operator time to clear a login-time challenge.
	LoginCooldown time.Duration
	// PageSettle is the wait after every navigation.
	PageSettle time.Duration
	// ScrollSettle is the wait between scroll steps.
	ScrollSettle time.Duration
	// RevealSettle is the wait after clicking a UI reveal affordance.
	RevealSettle time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		LoginCooldown: 40 * time.Second,
		PageSettle:    2 * time.Second,
		ScrollSettle:  time.Second,
		RevealSettle:  2 * time.Second,
	}
}

type SessionOptions struct {
	Delays  Delays
	Backoff Backoff
	// ChallengeDumpDir, when set, receives a screenshot of each challenge
	// interstitial. Useful for headless runs where nobody is watching.
	ChallengeDumpDir string
}

// Session owns one logged-in browser for the duration of a run. All
// navigation, pagination and extraction on it is strictly sequential; the
// owner must Close it exactly once.
type Session struct {
	browser    browser.Browser
	logger     zerolog.Logger
	delays     Delays
	backoff    Backoff
	dumpDir    string
	challenges int
}

func NewSession(b browser.Browser, logger zerolog.Logger, opts SessionOptions) *Session {
	delays := opts.Delays
	if delays == (Delays{}) {
		delays = DefaultDelays()
	}
	backoff := opts.Backoff
	if backoff.InitialWait <= 0 {
		backoff = DefaultBackoff()
	}
	return &Session{
		browser: b,
		logger:  logger,
		delays:  delays,
		backoff: backoff,
		dumpDir: opts.ChallengeDumpDir,
	}
}

func (s *Session) Close() error {
	return s.browser.Close()
}

// ChallengeCount reports how many challenge interstitials the session ran
// into, so callers can e.g. penalize the proxy the session used.
func (s *Session) ChallengeCount() int {
	return s.challenges
}

// Login submits the credentials and verifies the browser landed on the
// authenticated feed. Any other landing page is fatal for the run: at
// login time a verification challenge and wrong credentials look the same.
func (s *Session) Login(creds Credentials) error {
	if err := s.browser.Navigate(loginURL); err != nil {
		return fmt.Errorf("open login page: %w", err)
	}
	if err := s.browser.Fill("#username", creds.Email); err != nil {
		return fmt.Errorf("fill username: %w", err)
	}
	if err := s.browser.Fill("#password", creds.Password); err != nil {
		return fmt.Errorf("fill password: %w", err)
	}
	if err := s.browser.Submit("#password"); err != nil {
		return fmt.Errorf("submit login form: %w", err)
	}
	s.sleep(s.delays.PageSettle)

	loc, err := s.browser.Location()
	if err != nil {
		return err
	}
	if strings.TrimSpace(loc) != feedHomeURL {
		s.logger.Warn().Str("landed_on", loc).Msg("login did not reach the feed, waiting before giving up")
		s.sleep(s.delays.LoginCooldown)
		return fmt.Errorf("%w: landed on %s", ErrAuthentication, loc)
	}
	return nil
}

// snapshot parses the currently rendered page into a document that field
// extractors can query without further browser round trips.
func (s *Session) snapshot() (*goquery.Document, error) {
	html, err := s.browser.HTML()
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func (s *Session) sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

func (s *Session) dumpChallenge(target string) {
	if s.dumpDir == "" {
		return
	}
	shot, err := s.browser.Screenshot()
	if err != nil {
		s.logger.Debug().Err(err).Msg("challenge screenshot failed")
		return
	}
	name := fmt.Sprintf("challenge-%s.png", time.Now().Format("20060102-150405"))
	path := filepath.Join(s.dumpDir, name)
	if err := os.WriteFile(path, shot, 0o644); err != nil {
		s.logger.Debug().Err(err).Str("path", path).Msg("challenge screenshot not written")
		return
	}
	s.logger.Info().Str("target", target).Str("path", path).Msg("challenge screenshot saved")
}
