package scraper

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/linscrape/internal/models"
)

// Feed item selectors. Every item container carries a stable data-id
// attribute; the per-field class names are the platform's own.
const (
	postContainerSel  = "[data-id]"
	postAuthorSel     = ".feed-shared-actor__name"
	postAuthorLinkSel = "a.feed-shared-actor__container-link"
	postAuthorDescSel = ".feed-shared-actor__description"
	postPublishedSel  = ".feed-shared-actor__sub-description"
	postTextSel       = ".feed-shared-text"
)

// ScrapeHashtags scrapes each keyword sequentially on this session and
// aggregates the envelopes. A duplicate keyword overwrites the earlier
// envelope and is logged.
func (s *Session) ScrapeHashtags(tags []string, maxScrolls int) *models.ResultSet {
	results := models.NewResultSet()
	for _, tag := range tags {
		env := s.ScrapeHashtag(tag, maxScrolls)
		if results.Add(env) {
			s.logger.Warn().Str("target", env.Target).Msg("duplicate target, earlier result overwritten")
		}
	}
	return results
}

// ScrapeHashtag scrapes the feed for one hashtag keyword. An abandoned
// target (invalid, not found, retries exhausted) yields an envelope with a
// nil payload; that absence is the only per-target error signal.
func (s *Session) ScrapeHashtag(tag string, maxScrolls int) models.Envelope {
	tag = sanitize(strings.TrimSpace(tag))
	target := HashtagURL(tag)

	var (
		posts     map[string]models.Post
		truncated bool
	)
	err := s.withRetry(target, func() error {
		var err error
		truncated, err = s.loadFullPage(maxScrolls)
		if err != nil {
			return err
		}
		doc, err := s.snapshot()
		if err != nil {
			return err
		}
		posts = extractPosts(doc)
		return nil
	})

	env := models.NewEnvelope(tag, time.Now())
	if err != nil {
		s.logger.Warn().Str("hashtag", tag).Err(err).Msg("hashtag abandoned")
		return env
	}

	env.Posts = posts
	env.Truncated = truncated
	if truncated {
		s.logger.Info().Str("hashtag", tag).Int("posts", len(posts)).Msg("feed truncated at scroll cap")
	}
	s.logger.Info().Str("hashtag", tag).Int("posts", len(posts)).Msg("hashtag scraped")
	return env
}

// extractPosts maps every rendered feed item to a Post. Field reads are
// isolated: a missing field becomes an empty string. An item without its
// native data-id has no usable identity and is skipped.
func extractPosts(doc *goquery.Document) map[string]models.Post {
	posts := map[string]models.Post{}
	doc.Find(postContainerSel).Each(func(_ int, item *goquery.Selection) {
		dataID := strings.TrimSpace(item.AttrOr("data-id", ""))
		if dataID == "" {
			return
		}

		post := models.Post{
			DataID:            dataID,
			PostID:            models.PostID(dataID),
			Username:          fieldText(item, postAuthorSel),
			AuthorDescription: fieldText(item, postAuthorDescSel),
			Published:         fieldText(item, postPublishedSel),
			Text:              fieldText(item, postTextSel),
		}
		if href, ok := item.Find(postAuthorLinkSel).First().Attr("href"); ok {
			post.AuthorProfileID = profileIDFromURL(href)
		}
		posts[post.PostID] = post
	})
	return posts
}

// fieldText reads one field best-effort; absence degrades to "".
func fieldText(root *goquery.Selection, selector string) string {
	return sanitize(strings.TrimSpace(root.Find(selector).First().Text()))
}
