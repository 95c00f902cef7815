package models

import "time"

type Deck struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeckFilter narrows deck listings.
type DeckFilter struct {
	OwnerID int64
	Tag     string
	Limit   int
	Offset  int
}

// DeckUpdate carries the fields of a partial deck edit; nil fields are left
// unchanged.
type DeckUpdate struct {
	Title       *string
	Description *string
	IsPublic    *bool
	Tags        *[]string
}

// DeckStat is the lightweight per-deck summary shown on deck pages.
type DeckStat struct {
	DeckID    int64     `json:"deck_id"`
	Title     string    `json:"title"`
	CardCount int       `json:"card_count"`
	CreatedAt time.Time `json:"created_at"`
}
