// Package domain defines the core entities of the book diary.
package domain

import "time"

// RatingUnset is the sentinel value for a book that has not been rated yet.
// Planned books always carry this sentinel; rated books use 1..RatingMax.
const (
	RatingUnset = 0
	RatingMin   = 1
	RatingMax   = 10
)

// Book is a single diary entry: a book the user plans to read or has read.
//
// ID is 0 until the store assigns one on first insert. GenreID references the
// genre's stable remote id, not the local row id. ImageID is an opaque image
// cache id; empty means "no photo attached". A dangling ImageID is rendered
// as "no image" rather than treated as an error.
type Book struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Rating      int       `json:"rating"`
	GenreID     string    `json:"genre_id"`
	ImageID     string    `json:"image_id,omitempty"`
	BlurHash    string    `json:"blur_hash,omitempty"`
	Planned     bool      `json:"planned"`
	Favorite    bool      `json:"favorite"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Rated reports whether the entry has a rating set.
func (b *Book) Rated() bool {
	return b.Rating > RatingUnset
}

// InitTimestamps sets CreatedAt and UpdatedAt to now.
func (b *Book) InitTimestamps() {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Touch updates UpdatedAt to now.
func (b *Book) Touch() {
	b.UpdatedAt = time.Now().UTC()
}
