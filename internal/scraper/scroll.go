package scraper

// loadFullPage grows the rendered content by scrolling one viewport at a
// time until the content height stops outrunning the scrolled distance, or
// maxScrolls scroll-and-wait cycles have run. The returned flag reports
// whether the cap cut the loop short, i.e. the feed was truncated.
func (s *Session) loadFullPage(maxScrolls int) (truncated bool, err error) {
	viewport, err := s.browser.ViewportHeight()
	if err != nil {
		return false, err
	}
	if viewport <= 0 {
		return false, nil
	}

	scrolls := int64(1)
	for {
		content, err := s.browser.ContentHeight()
		if err != nil {
			return false, err
		}
		if scrolls*viewport >= content {
			return false, nil
		}
		if scrolls > int64(maxScrolls) {
			return true, nil
		}
		if err := s.browser.ScrollTo(viewport * scrolls); err != nil {
			return false, err
		}
		s.sleep(s.delays.ScrollSettle)
		scrolls++
	}
}
