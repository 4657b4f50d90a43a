package browser

import "errors"

// ErrElementNotFound is returned by interaction methods when the requested
// element is not present on the current page.
var ErrElementNotFound = errors.New("element not found")

// Browser is the minimal surface the scrape engine needs from a driven
// browser session. Field extraction itself never goes through this
// interface; extractors work on HTML() snapshots, so they can be tested
// against static documents.
type Browser interface {
	Navigate(url string) error
	Location() (string, error)

	Fill(selector string, value string) error
	Submit(selector string) error
	Click(selector string) error
	ClickByText(selector string, text string) error

	ScrollTo(y int64) error
	ViewportHeight() (int64, error)
	ContentHeight() (int64, error)

	HTML() (string, error)
	Screenshot() ([]byte, error)

	Close() error
}
