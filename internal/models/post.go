package models

import (
	"crypto/sha1"
	"encoding/hex"
)

// Post is a single feed item extracted from a hashtag feed.
type Post struct {
	PostID            string `json:"post_id"`
	Username          string `json:"username"`
	AuthorProfileID   string `json:"author_profile_id,omitempty"`
	AuthorDescription string `json:"author_description"`
	Published         string `json:"published"`
	Text              string `json:"text"`
	DataID            string `json:"data_id"`
}

// PostID hashes the platform's native item identifier into the stable key
// used for aggregation. Same native id, same key, so re-scraping a feed
// overwrites instead of duplicating.
func PostID(dataID string) string {
	sum := sha1.Sum([]byte(dataID))
	return hex.EncodeToString(sum[:])
}
