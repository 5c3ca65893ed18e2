package page

import (
	"facethewall/internal/locale"
	"facethewall/internal/musicapi"
)

// Page is everything the site front end needs to render one language of the
// landing page.
type Page struct {
	Locale     locale.Code      `json:"locale"`
	Languages  []LanguageOption `json:"languages"`
	Header     []HeaderLink     `json:"header"`
	Buttons    locale.Buttons   `json:"buttons"`
	Hero       Hero             `json:"hero"`
	About      About            `json:"about"`
	Members    []Member         `json:"members"`
	Background Asset            `json:"background"`
	Music      Music            `json:"music"`
	Tour       Tour             `json:"tour"`
	Contact    Contact          `json:"contact"`
	Socials    []Link           `json:"socials"`
	Streaming  []Link           `json:"streaming"`

	// Partial is set when some albums could not be fetched and the album
	// figures only cover the ones that were.
	Partial bool `json:"partial"`
}

type LanguageOption struct {
	Code   locale.Code `json:"code"`
	Flag   string      `json:"flag"`
	Active bool        `json:"active"`
}

type HeaderLink struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}

// Stat is a figure with its caption, e.g. "3000+" followers.
type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Hero struct {
	ArtistName   string `json:"artistName"`
	Subtitle     string `json:"subtitle"`
	ListenButton string `json:"listenButton"`
	TourTitle    string `json:"tourTitle"`
	TourSubtitle string `json:"tourSubtitle"`

	Followers        int    `json:"followers"`
	NumAlbums        int    `json:"numAlbums"`
	TotalAlbumTracks int    `json:"totalAlbumTracks"`
	Stats            []Stat `json:"stats"`

	NextShow *TourDate `json:"nextShow,omitempty"`
}

// Asset is an image with its alternative text.
type Asset struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type About struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
	Tiles      []Stat   `json:"tiles"`
	Photo      Asset    `json:"photo"`
}

type Member struct {
	Name       string `json:"name"`
	Instrument string `json:"instrument"`
	Instagram  string `json:"instagram"`
	Link       string `json:"link"`
	Photo      string `json:"photo"`
}

type Music struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Albums      []AlbumCard `json:"albums"`
}

// AlbumCard is one album as shown in the music section.
type AlbumCard struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Cover         string     `json:"cover"`
	ReleaseDate   string     `json:"releaseDate"`
	ReleaseYear   string     `json:"releaseYear"`
	FormattedDate string     `json:"formattedDate"`
	TotalTracks   int        `json:"totalTracks"`
	Genres        []string   `json:"genres"`
	ListenURL     string     `json:"listenUrl"`
	Tracks        []TrackRow `json:"tracks"`
	MoreTracks    int        `json:"moreTracks"`
}

type TrackRow struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Duration string `json:"duration"`
}

type Tour struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Dates        []TourDate `json:"dates"`
	NoShows      bool       `json:"noShows"`
	EmptyMessage string     `json:"emptyMessage,omitempty"`
}

type TourDate struct {
	Date      string             `json:"date"`
	Location  string             `json:"location"`
	Venue     string             `json:"venue"`
	Status    string             `json:"status"`
	Class     locale.StatusClass `json:"class"`
	SoldOut   bool               `json:"soldOut"`
	TicketURL string             `json:"ticketUrl,omitempty"`
}

type Contact struct {
	locale.Contact
	BookingEmail string `json:"bookingEmail"`
}

type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CatalogView is the raw catalog data for the artist.
type CatalogView struct {
	Artist musicapi.ArtistProfile  `json:"artist"`
	Albums []musicapi.AlbumSummary `json:"albums"`
}
