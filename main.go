package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"debate-archive/pkg/feed"
)

func main() {
	// For now, hardcode the feed URL
	feedURL := "https://feeds.acast.com/public/shows/intelligencesquared"

	if len(os.Args) > 1 {
		feedURL = os.Args[1]
	}

	ingestor := feed.NewIngestor()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	episodes, err := ingestor.Ingest(ctx, feedURL)
	if err != nil {
		log.Fatalf("Failed to ingest feed: %v", err)
	}

	// Print first 10 episodes
	maxEpisodes := 10
	if len(episodes) < maxEpisodes {
		maxEpisodes = len(episodes)
	}

	fmt.Printf("Found %d episodes. Showing first %d:\n\n", len(episodes), maxEpisodes)

	for i := 0; i < maxEpisodes; i++ {
		episode := episodes[i]
		fmt.Printf("Episode %d:\n", i+1)
		fmt.Printf("  Id: %s\n", episode.Id)
		fmt.Printf("  Title: %s\n", episode.Title)
		fmt.Printf("  Audio: %s\n", episode.AudioURL)
		fmt.Printf("  Published: %s\n", episode.PublishedAt)
		if episode.Description != "" {
			fmt.Printf("  Description: %.80s\n", episode.Description)
		}
		fmt.Println()
	}
}
