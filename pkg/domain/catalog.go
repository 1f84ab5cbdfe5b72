package domain

import (
	"fmt"
	"strconv"
)

// CatalogItem represents a single entry of the video game catalog as stored in
// the database. Optional columns are pointers; nil means the column is NULL
// and presentation layers must substitute a placeholder instead of failing.
type CatalogItem struct {
	// ID is the store-assigned unique identifier of the item.
	ID int64 `json:"id"`
	// Name is the title of the game. Always present.
	Name string `json:"name"`
	// Genre is the category of the game, nil when unknown.
	Genre *string `json:"genre,omitempty"`
	// Year is the release year, nil when unknown.
	Year *int `json:"year,omitempty"`
	// Price is the list price in the store currency, nil when unknown.
	Price *float64 `json:"price,omitempty"`
}

// Placeholders used when optional catalog columns are NULL.
const (
	// MissingText replaces NULL genre and price values in rendered output.
	MissingText = "N/A"
	// MissingYear replaces NULL year values in rendered output.
	MissingYear = "-"
)

// GenreText returns the genre or the missing-value placeholder.
func (c CatalogItem) GenreText() string {
	if c.Genre == nil || *c.Genre == "" {
		return MissingText
	}

	return *c.Genre
}

// YearText returns the release year or the missing-value placeholder.
func (c CatalogItem) YearText() string {
	if c.Year == nil {
		return MissingYear
	}

	return strconv.Itoa(*c.Year)
}

// PriceText returns the price formatted as currency with two decimals, or the
// missing-value placeholder when the price is NULL.
func (c CatalogItem) PriceText() string {
	if c.Price == nil {
		return MissingText
	}

	return fmt.Sprintf("$%.2f", *c.Price)
}

// CatalogFilter narrows a catalog query. A numeric Term matches the item ID
// exactly; any other non-empty Term matches a case-insensitive substring of
// the name. Limit of zero means no cap.
type CatalogFilter struct {
	// Term is the raw search term as typed by the user.
	Term string
	// Limit caps the number of returned rows; zero disables the cap.
	Limit uint
}

// Recipient is a delivery target for the encrypted catalog report. Cedula is
// the national ID number used as the PDF password, so it must never be logged.
type Recipient struct {
	// Cedula is the credential used as both owner and user password of the
	// generated PDF.
	Cedula string `json:"-"`
	// Email is the address the report is delivered to.
	Email string `json:"email"`
}

// GeoContext is an optional enrichment describing where the report was
// generated. It has no identity beyond a single batch run.
type GeoContext struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Sentinel GeoContext values used when the lookup fails. These mirror the
// texts embedded in the generated documents.
var (
	// UnknownLocation is used when the lookup service answers with a
	// non-success status.
	UnknownLocation = GeoContext{City: "Desconocida", Country: "Desconocido"}
	// NetworkErrorLocation is used when the lookup service cannot be reached.
	NetworkErrorLocation = GeoContext{City: "Error de Red", Country: "Error"}
)
