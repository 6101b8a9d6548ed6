// Package main provides a tool to seed the database with test diary data.
//
// This mirrors a handful of genres and creates diary entries against them to
// exercise shelves, search, and favorites without a remote catalog.
//
// Usage:
//
//	DB_PATH=~/BookDiary/data/bookdiary.db go run ./cmd/seed
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/ElenaBalahnina123/BookDiary/internal/domain"
	"github.com/ElenaBalahnina123/BookDiary/internal/id"
	"github.com/ElenaBalahnina123/BookDiary/internal/store"
	"github.com/ElenaBalahnina123/BookDiary/internal/store/sqlite"
)

var entryCount = flag.Int("books", 25, "Number of diary entries to create")

var genreLabels = []string{
	"Biography",
	"Classics",
	"Fantasy",
	"History",
	"Mystery",
	"Poetry",
	"Science Fiction",
	"Thriller",
}

var sampleTitles = []string{
	"The Glass Orchard",
	"Winter Letters",
	"A Study of Tides",
	"The Cartographer's Son",
	"Nightfall in Prague",
	"The Last Apiary",
	"Songs for the Departed",
	"The Quiet Harbor",
}

var sampleAuthors = []string{
	"M. Aldencourt",
	"Ruth Calloway",
	"J. P. Hestvik",
	"Elena Marsh",
	"Tomas Reiner",
	"A. Okonkwo",
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/BookDiary/data/bookdiary.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, slog.Default(), store.NewNoopEmitter())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	genres := seedGenres(ctx, s)
	seedBooks(ctx, s, rng, genres)

	books, _ := s.CountBooks(ctx)
	count, _ := s.CountGenres(ctx)
	fmt.Printf("\nDone: %d genres, %d books\n", count, books)
}

// seedGenres mirrors the sample genres that are not already present and
// returns every mirrored remote id.
func seedGenres(ctx context.Context, s *sqlite.Store) []string {
	existing, err := s.ListGenres(ctx)
	if err != nil {
		log.Fatalf("Failed to list genres: %v", err)
	}

	have := make(map[string]string, len(existing))
	for _, g := range existing {
		have[g.Label] = g.RemoteID
	}

	var missing []*domain.Genre
	for _, label := range genreLabels {
		if _, ok := have[label]; ok {
			continue
		}
		missing = append(missing, &domain.Genre{
			RemoteID: id.MustGenerate("gen"),
			Label:    label,
		})
	}

	if len(missing) > 0 {
		if err := s.InsertGenres(ctx, missing); err != nil {
			log.Fatalf("Failed to insert genres: %v", err)
		}
		fmt.Printf("Mirrored %d genres\n", len(missing))
	}

	var ids []string
	for _, remoteID := range have {
		ids = append(ids, remoteID)
	}
	for _, g := range missing {
		ids = append(ids, g.RemoteID)
	}
	return ids
}

// seedBooks creates random diary entries, a mix of rated and planned.
func seedBooks(ctx context.Context, s *sqlite.Store, rng *rand.Rand, genreIDs []string) {
	for i := 0; i < *entryCount; i++ {
		rating := 0
		if rng.Intn(3) > 0 { // two thirds rated, one third planned
			rating = 1 + rng.Intn(10)
		}

		b := &domain.Book{
			Title:    sampleTitles[rng.Intn(len(sampleTitles))],
			Author:   sampleAuthors[rng.Intn(len(sampleAuthors))],
			Date:     time.Now().AddDate(0, 0, -rng.Intn(365)),
			Rating:   rating,
			GenreID:  genreIDs[rng.Intn(len(genreIDs))],
			Planned:  rating == 0,
			Favorite: rating >= 9,
		}
		b.InitTimestamps()

		if err := s.CreateBook(ctx, b); err != nil {
			log.Fatalf("Failed to create book: %v", err)
		}
	}

	fmt.Printf("Created %d diary entries\n", *entryCount)
}
