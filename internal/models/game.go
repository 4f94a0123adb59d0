package models

// Game is a board-game record sourced from the external catalog.
//
// ID and Name are mandatory; the remaining fields are pass-through from
// the catalog and may be zero-valued.
type Game struct {
	// ID is the globally unique identifier assigned by the catalog.
	ID string `json:"id"`

	// Name is the game's display name.
	Name string `json:"name"`

	// URL is the catalog page for the game.
	URL string `json:"url,omitempty"`

	// Image is the cover image URL.
	Image string `json:"image,omitempty"`

	// Publisher is the primary publisher's name.
	Publisher string `json:"publisher,omitempty"`

	// AmazonRank is the game's Amazon sales rank, 0 when unknown.
	AmazonRank int `json:"amazon_rank,omitempty"`

	// Price is the listed price in USD, 0 when unknown.
	Price float64 `json:"price,omitempty"`
}
