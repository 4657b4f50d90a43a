package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/linscrape/internal/browser"
	"github.com/jimezsa/linscrape/internal/models"
)

const feedHTML = `
<html><body>
<div data-id="urn:li:activity:1">
  <a class="feed-shared-actor__container-link" href="https://www.linkedin.com/in/jane-doe?miniProfileUrn=abc"></a>
  <span class="feed-shared-actor__name">Jane Doe</span>
  <span class="feed-shared-actor__description">Staff Engineer at Acme</span>
  <span class="feed-shared-actor__sub-description">2h</span>
  <div class="feed-shared-text">Shipping is a feature.</div>
</div>
<div data-id="urn:li:activity:2">
  <a class="feed-shared-actor__container-link" href="/in/john-roe/"></a>
  <span class="feed-shared-actor__name">John Roe</span>
  <span class="feed-shared-actor__sub-description">5h</span>
  <div class="feed-shared-text">Hiring Go engineers.</div>
</div>
<div data-id="urn:li:activity:3">
  <span class="feed-shared-actor__name">Ada L.</span>
  <span class="feed-shared-actor__description">Researcher</span>
  <span class="feed-shared-actor__sub-description">1d</span>
  <div class="feed-shared-text">New paper out.</div>
</div>
<div class="feed-shared-update">no data-id, must be skipped</div>
</body></html>`

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse document: %v", err)
	}
	return doc
}

func TestExtractPosts(t *testing.T) {
	posts := extractPosts(mustDoc(t, feedHTML))
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}

	first, ok := posts[models.PostID("urn:li:activity:1")]
	if !ok {
		t.Fatal("post 1 missing")
	}
	if first.Username != "Jane Doe" {
		t.Fatalf("username = %q", first.Username)
	}
	if first.AuthorProfileID != "jane-doe" {
		t.Fatalf("author profile id = %q", first.AuthorProfileID)
	}
	if first.AuthorDescription != "Staff Engineer at Acme" {
		t.Fatalf("author description = %q", first.AuthorDescription)
	}
	if first.Published != "2h" || first.Text != "Shipping is a feature." {
		t.Fatalf("unexpected fields: %+v", first)
	}

	// Missing description degrades to empty, never drops the record.
	second, ok := posts[models.PostID("urn:li:activity:2")]
	if !ok {
		t.Fatal("post 2 missing")
	}
	if second.AuthorDescription != "" {
		t.Fatalf("missing field should be empty, got %q", second.AuthorDescription)
	}
	if second.AuthorProfileID != "john-roe" {
		t.Fatalf("relative author link not handled, got %q", second.AuthorProfileID)
	}

	// Missing author link degrades to empty profile id.
	third, ok := posts[models.PostID("urn:li:activity:3")]
	if !ok {
		t.Fatal("post 3 missing")
	}
	if third.AuthorProfileID != "" {
		t.Fatalf("expected empty profile id, got %q", third.AuthorProfileID)
	}
}

func TestExtractPostsIdempotent(t *testing.T) {
	first := extractPosts(mustDoc(t, feedHTML))
	second := extractPosts(mustDoc(t, feedHTML))
	if len(first) != len(second) {
		t.Fatalf("extractions differ in size: %d vs %d", len(first), len(second))
	}
	for id := range first {
		if _, ok := second[id]; !ok {
			t.Fatalf("post id %s not stable across extractions", id)
		}
	}
}

func TestScrapeHashtagsEndToEnd(t *testing.T) {
	const checkpoint = "https://www.linkedin.com/checkpoint/challenge/"

	fake := browser.NewFake()
	fake.Pages[HashtagURL("#ai")] = feedHTML
	// #ml: a challenge on the first attempt, then the unavailable surface.
	fake.Redirects[HashtagURL("#ml")] = []string{checkpoint, unavailableURL}

	session := newTestSession(fake, 3)
	results := session.ScrapeHashtags([]string{"#ai", "#ml"}, 10)

	if results.Len() != 2 {
		t.Fatalf("expected 2 envelopes, got %d", results.Len())
	}

	ai, ok := results.Get("#ai")
	if !ok {
		t.Fatal("#ai envelope missing")
	}
	if ai.IsError() {
		t.Fatal("#ai should have a payload")
	}
	if len(ai.Posts) != 3 {
		t.Fatalf("#ai should have 3 posts, got %d", len(ai.Posts))
	}
	if ai.ScrapingDate == "" {
		t.Fatal("envelope must carry a scraping date")
	}

	ml, ok := results.Get("#ml")
	if !ok {
		t.Fatal("#ml envelope missing")
	}
	if !ml.IsError() {
		t.Fatal("#ml should carry a null payload after challenge + not found")
	}
}

func TestScrapeHashtagInvalidKeywordStillEnvelopes(t *testing.T) {
	fake := browser.NewFake()
	session := newTestSession(fake, 1)

	// Control characters are stripped before the URL is built, so the
	// keyword itself cannot invalidate the target.
	env := session.ScrapeHashtag("#go\n", 10)
	if env.Target != "#go" {
		t.Fatalf("target should be sanitized, got %q", env.Target)
	}
}
