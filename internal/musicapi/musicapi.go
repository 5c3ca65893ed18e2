package musicapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// MusicProvider represents a music streaming service
type MusicProvider string

const (
	ProviderSpotify    MusicProvider = "spotify"
	ProviderAppleMusic MusicProvider = "apple_music"
)

// Image is a piece of artwork with its pixel dimensions.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ArtistProfile is the public profile of the band.
type ArtistProfile struct {
	Name      string   `json:"name"`
	Followers int      `json:"followers"`
	Genres    []string `json:"genres"`
	Images    []Image  `json:"images"`
}

// AlbumSummary identifies one album of the artist.
type AlbumSummary struct {
	ID string `json:"id"`
}

// AlbumDetail is a full album including its track list.
type AlbumDetail struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ReleaseDate string   `json:"release_date"`
	TotalTracks int      `json:"total_tracks"`
	Images      []Image  `json:"images"`
	Genres      []string `json:"genres"`
	ExternalURL string   `json:"external_url"`
	Tracks      []Track  `json:"tracks"`
}

// Track is a single song on an album. TrackNumber is 1-based.
type Track struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DurationMS  int    `json:"duration_ms"`
	TrackNumber int    `json:"track_number"`
}

// Catalog defines the read operations the site needs from a music service.
type Catalog interface {
	// GetArtist retrieves the artist profile by ID
	GetArtist(ctx context.Context, artistID string) (*ArtistProfile, error)

	// ListAlbumIDs lists the albums of an artist, in the order the service returns them
	ListAlbumIDs(ctx context.Context, artistID string) ([]AlbumSummary, error)

	// GetAlbumDetail retrieves full album details including tracks by ID
	GetAlbumDetail(ctx context.Context, albumID string) (*AlbumDetail, error)
}

// Config holds configuration for music API clients
type Config struct {
	// Spotify credentials
	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyTokenURL     string
	SpotifyBaseURL      string

	// Apple Music credentials
	AppleMusicKeyID      string
	AppleMusicTeamID     string
	AppleMusicPrivateKey string
	AppleMusicStorefront string
	AppleMusicBaseURL    string

	RequestTimeout time.Duration
}

// HTTPClient builds the client shared by the token provider and the catalog.
func (c Config) HTTPClient() *http.Client {
	timeout := c.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// AuthError reports a failed credential exchange.
type AuthError struct {
	Status int
	Body   string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog auth failed: %v", e.Err)
	}
	return fmt.Sprintf("catalog auth failed: %d - %s", e.Status, e.Body)
}

func (e *AuthError) Unwrap() error { return e.Err }

// UpstreamError reports a failed catalog call. Status is 0 when no response
// was received (timeout, connection reset).
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog api error: %v", e.Err)
	}
	return fmt.Sprintf("catalog api error: %d - %s", e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var upstream *UpstreamError
	return errors.As(err, &upstream) && upstream.Status == http.StatusNotFound
}
