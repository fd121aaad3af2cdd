package domain

// Episode is a normalized item pulled from a syndication feed.
type Episode struct {
	// Id uniquely identifies the episode. Feeds that carry no GUID get a
	// synthetic id derived from the audio reference, the item link, or the
	// feed URL plus the item position, in that order.
	Id string `bson:"id" json:"id"`

	Title string `bson:"title" json:"title"`

	// AudioURL is the playable audio reference extracted from the item
	// enclosure or its media extension.
	AudioURL string `bson:"audio_url" json:"audio_url"`

	// PublishedAt keeps the publication timestamp exactly as the feed
	// stated it. No reformatting is applied.
	PublishedAt string `bson:"published_at" json:"published_at"`

	Description string `bson:"description" json:"description"`
}
