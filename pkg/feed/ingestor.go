// Package feed fetches syndication feeds and normalizes their items into
// episode records. Feeds in the wild are messy: items miss ids, hide the
// audio reference in different places, or lack required fields entirely.
// Normalization is strict about what it lets through, a bad item fails the
// whole ingestion instead of being dropped.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"debate-archive/pkg/domain"
	"debate-archive/pkg/events"
)

// Ingestor handles feed fetching and item normalization
type Ingestor struct {
	feedParser *gofeed.Parser
	hook       events.Hook
}

// NewIngestor creates a new feed ingestor
func NewIngestor() *Ingestor {
	return &Ingestor{
		feedParser: gofeed.NewParser(),
	}
}

// NewIngestorWithClient creates a new feed ingestor that fetches through the
// given HTTP client, so callers control headers and timeouts
func NewIngestorWithClient(client *http.Client) *Ingestor {
	parser := gofeed.NewParser()
	parser.Client = client
	return &Ingestor{
		feedParser: parser,
	}
}

// SetEventHook routes ingestion events to the given hook
func (ing *Ingestor) SetEventHook(hook events.Hook) {
	ing.hook = hook
}

// Ingest fetches and parses the feed at feedURL and normalizes every item
// into an Episode, preserving the feed's native item order. The context
// bounds the fetch; expiry surfaces as ErrFeedUnreachable.
func (ing *Ingestor) Ingest(ctx context.Context, feedURL string) ([]domain.Episode, error) {
	parsed, err := ing.feedParser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %w", ErrFeedUnreachable, feedURL, err)
	}

	if parsed == nil || len(parsed.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFeed, feedURL)
	}

	episodes := make([]domain.Episode, 0, len(parsed.Items))
	for i, item := range parsed.Items {
		episode, err := normalizeItem(feedURL, i, item)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, episode)
	}

	ing.hook.Emit("feed", "feed_ingested", map[string]any{
		"url":      feedURL,
		"episodes": len(episodes),
	})

	return episodes, nil
}

// normalizeItem turns one raw feed item into an Episode. Title, audio
// reference, and publish date are required after fallbacks; a miss on any
// of them rejects the item.
func normalizeItem(feedURL string, index int, item *gofeed.Item) (domain.Episode, error) {
	episode := domain.Episode{
		Title:       strings.TrimSpace(item.Title),
		AudioURL:    enclosureURL(item),
		PublishedAt: publishedAt(item),
		Description: description(item),
	}
	episode.Id = episodeId(feedURL, index, item, episode.AudioURL)

	if episode.Title == "" || episode.AudioURL == "" || episode.PublishedAt == "" {
		return domain.Episode{}, &MalformedItemError{Index: index}
	}

	return episode, nil
}

// episodeId picks the first stable identifier available: explicit item
// guid, then the audio reference, then the item permalink, then a synthetic
// fallback built from the feed URL and the item position. The synthetic id
// is unique because the index is unique within one feed.
func episodeId(feedURL string, index int, item *gofeed.Item, audioURL string) string {
	if guid := strings.TrimSpace(item.GUID); guid != "" {
		return guid
	}
	if audioURL != "" {
		return audioURL
	}
	if link := strings.TrimSpace(item.Link); link != "" {
		return link
	}
	return feedURL + "#" + strconv.Itoa(index)
}

// enclosureURL extracts the audio reference. Feeds disagree on where it
// lives: most carry a standard enclosure element with a url attribute, some
// only a media extension whose url sits either in the attributes or as the
// bare element value. Both shapes are checked in turn.
func enclosureURL(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc == nil {
			continue
		}
		if u := strings.TrimSpace(enc.URL); u != "" {
			return u
		}
	}
	return mediaContentURL(item.Extensions)
}

func mediaContentURL(extensions ext.Extensions) string {
	media, ok := extensions["media"]
	if !ok {
		return ""
	}
	for _, entry := range media["content"] {
		if u := strings.TrimSpace(entry.Attrs["url"]); u != "" {
			return u
		}
		if v := strings.TrimSpace(entry.Value); v != "" {
			return v
		}
	}
	return ""
}

func publishedAt(item *gofeed.Item) string {
	if published := strings.TrimSpace(item.Published); published != "" {
		return published
	}
	return strings.TrimSpace(item.Updated)
}

// description is optional and never fails, it just walks the fallback chain
// until something is non-empty.
func description(item *gofeed.Item) string {
	if d := strings.TrimSpace(item.Description); d != "" {
		return d
	}
	if c := strings.TrimSpace(item.Content); c != "" {
		return c
	}
	if item.ITunesExt != nil {
		if s := strings.TrimSpace(item.ITunesExt.Summary); s != "" {
			return s
		}
	}
	return ""
}
