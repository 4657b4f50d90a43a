package browser

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const (
	defaultActionTimeout = 30 * time.Second
	clickTimeout         = 3 * time.Second
)

// Options configure the Chrome process backing a session.
type Options struct {
	Headless  bool
	NoSandbox bool
	UserAgent string
	// ProxyURL is handed to Chrome as --proxy-server for the whole session.
	ProxyURL string
	// ExecPath overrides the browser binary; defaults to $CHROME_PATH when set.
	ExecPath string
	// ActionTimeout bounds each individual browser action.
	ActionTimeout time.Duration
}

// Chrome drives a single Chrome instance over the DevTools protocol.
type Chrome struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	timeout     time.Duration
}

func NewChrome(parent context.Context, opts Options) (*Chrome, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.NoSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ProxyURL != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.ProxyURL))
	}
	execPath := opts.ExecPath
	if execPath == "" {
		execPath = os.Getenv("CHROME_PATH")
	}
	if execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocOpts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	timeout := opts.ActionTimeout
	if timeout <= 0 {
		timeout = defaultActionTimeout
	}

	c := &Chrome{ctx: ctx, cancel: cancel, allocCancel: allocCancel, timeout: timeout}
	if err := c.run(c.timeout, chromedp.Navigate("about:blank")); err != nil {
		c.Close()
		return nil, fmt.Errorf("starting chrome: %w", err)
	}
	return c, nil
}

func (c *Chrome) run(timeout time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(c.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

func (c *Chrome) Navigate(url string) error {
	return c.run(c.timeout, chromedp.Navigate(url))
}

func (c *Chrome) Location() (string, error) {
	var loc string
	err := c.run(c.timeout, chromedp.Location(&loc))
	return loc, err
}

func (c *Chrome) Fill(selector string, value string) error {
	return c.run(c.timeout,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
	)
}

func (c *Chrome) Submit(selector string) error {
	return c.run(c.timeout, chromedp.Submit(selector, chromedp.ByQuery))
}

func (c *Chrome) Click(selector string) error {
	if err := c.run(clickTimeout, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("click %q: %w", selector, ErrElementNotFound)
	}
	return nil
}

// ClickByText clicks the first element matched by selector whose rendered
// text contains text. The snippet is fixed; selector and text enter it as
// quoted literals only.
func (c *Chrome) ClickByText(selector string, text string) error {
	js := fmt.Sprintf(
		`(function(){var els=document.querySelectorAll(%q);`+
			`for(var i=0;i<els.length;i++){`+
			`if((els[i].innerText||'').indexOf(%q)>=0){els[i].click();return true;}`+
			`}return false;})()`,
		selector, text,
	)
	var clicked bool
	if err := c.run(clickTimeout, chromedp.Evaluate(js, &clicked)); err != nil {
		return err
	}
	if !clicked {
		return fmt.Errorf("click %q containing %q: %w", selector, text, ErrElementNotFound)
	}
	return nil
}

func (c *Chrome) ScrollTo(y int64) error {
	js := fmt.Sprintf("window.scrollTo(0, %d);", y)
	return c.run(c.timeout, chromedp.Evaluate(js, nil))
}

func (c *Chrome) ViewportHeight() (int64, error) {
	return c.evalHeight("window.innerHeight")
}

func (c *Chrome) ContentHeight() (int64, error) {
	return c.evalHeight("document.body.offsetHeight")
}

func (c *Chrome) evalHeight(js string) (int64, error) {
	var height float64
	if err := c.run(c.timeout, chromedp.Evaluate(js, &height)); err != nil {
		return 0, err
	}
	return int64(height), nil
}

func (c *Chrome) HTML() (string, error) {
	var html string
	err := c.run(c.timeout, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

func (c *Chrome) Screenshot() ([]byte, error) {
	var buf []byte
	err := c.run(c.timeout, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, err = page.CaptureScreenshot().Do(ctx)
		return err
	}))
	return buf, err
}

func (c *Chrome) Close() error {
	c.cancel()
	c.allocCancel()
	return nil
}
