package browser

import "sync"

// Fake is an in-memory Browser for tests. Pages are served by URL, and
// navigation outcomes can be scripted per target to simulate redirects to
// challenge or unavailable surfaces.
type Fake struct {
	mu sync.Mutex

	// Pages maps a location to the HTML snapshot served there.
	Pages map[string]string
	// Redirects maps a navigated URL to the sequence of locations the
	// browser lands on, one per visit. Once the sequence is exhausted (or
	// for unlisted URLs) navigation lands on the URL itself.
	Redirects map[string][]string
	// LoginLocation is where Submit leaves the browser.
	LoginLocation string
	// FailClicks marks selectors (or ClickByText texts) whose click fails.
	FailClicks map[string]bool
	// ClickPages swaps the served HTML after a successful click, keyed by
	// selector or ClickByText text.
	ClickPages map[string]string

	Viewport int64
	// Heights is the sequence of ContentHeight readings; the last value
	// repeats once exhausted.
	Heights []int64

	location     string
	overrideHTML string
	heightIndex  int

	Navigations []string
	Filled      map[string]string
	Submitted   []string
	Clicked     []string
	ScrolledTo  []int64
	Screenshots int
	CloseCalls  int
}

func NewFake() *Fake {
	return &Fake{
		Pages:      map[string]string{},
		Redirects:  map[string][]string{},
		FailClicks: map[string]bool{},
		ClickPages: map[string]string{},
		Filled:     map[string]string{},
		Viewport:   10,
	}
}

func (f *Fake) Navigate(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Navigations = append(f.Navigations, url)
	f.overrideHTML = ""

	if seq, ok := f.Redirects[url]; ok && len(seq) > 0 {
		f.location = seq[0]
		f.Redirects[url] = seq[1:]
		return nil
	}
	f.location = url
	return nil
}

func (f *Fake) Location() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.location, nil
}

func (f *Fake) Fill(selector string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Filled[selector] = value
	return nil
}

func (f *Fake) Submit(selector string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Submitted = append(f.Submitted, selector)
	if f.LoginLocation != "" {
		f.location = f.LoginLocation
	}
	return nil
}

func (f *Fake) Click(selector string) error {
	return f.click(selector)
}

func (f *Fake) ClickByText(selector string, text string) error {
	return f.click(text)
}

func (f *Fake) click(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailClicks[key] {
		return ErrElementNotFound
	}
	f.Clicked = append(f.Clicked, key)
	if html, ok := f.ClickPages[key]; ok {
		f.overrideHTML = html
	}
	return nil
}

func (f *Fake) ScrollTo(y int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ScrolledTo = append(f.ScrolledTo, y)
	return nil
}

func (f *Fake) ViewportHeight() (int64, error) {
	return f.Viewport, nil
}

func (f *Fake) ContentHeight() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Heights) == 0 {
		return f.Viewport, nil
	}
	if f.heightIndex >= len(f.Heights) {
		return f.Heights[len(f.Heights)-1], nil
	}
	height := f.Heights[f.heightIndex]
	f.heightIndex++
	return height, nil
}

func (f *Fake) HTML() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.overrideHTML != "" {
		return f.overrideHTML, nil
	}
	return f.Pages[f.location], nil
}

func (f *Fake) Screenshot() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Screenshots++
	return []byte("screenshot"), nil
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CloseCalls++
	return nil
}
