// Package classify buckets extracted text units by user-supplied topics.
package classify

import (
	"regexp"
	"strings"

	"github.com/markdave123-py/papervoice/internal/models"
)

// Classify matches every text unit against every topic and returns one
// bucket per topic, in topic input order. Matching is case-insensitive
// whole-word: the topic occurs as a literal phrase bounded by word
// boundaries, so "transformers" does not match "Transformer". A unit may
// land in any number of buckets; a topic with no matches keeps its bucket
// with an empty unit list. Empty topics (after trimming) are dropped.
//
// Pure function: no external calls, deterministic for identical input.
func Classify(units []models.TextUnit, topics []string) []models.TopicBucket {
	var buckets []models.TopicBucket

	for _, raw := range topics {
		topic := strings.TrimSpace(raw)
		if topic == "" {
			continue
		}

		re := wholeWord(topic)
		bucket := models.TopicBucket{Topic: topic, Units: []models.TextUnit{}}
		for _, u := range units {
			if re.MatchString(u.Content) {
				bucket.Units = append(bucket.Units, u)
			}
		}
		buckets = append(buckets, bucket)
	}

	return buckets
}

// wholeWord compiles a case-insensitive pattern matching the topic as a
// standalone word or phrase. Multi-word topics match as one literal with
// boundaries at each end, not as independent words.
func wholeWord(topic string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(topic) + `\b`)
}
