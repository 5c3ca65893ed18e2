package musicapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultSpotifyBaseURL = "https://api.spotify.com/v1/"

// SpotifyClient implements Catalog against the Spotify Web API
type SpotifyClient struct {
	tokens     TokenProvider
	baseURL    string
	httpClient *http.Client
}

// NewSpotifyClient creates a new Spotify API client. An empty baseURL selects
// the public Web API.
func NewSpotifyClient(tokens TokenProvider, baseURL string, httpClient *http.Client) *SpotifyClient {
	if baseURL == "" {
		baseURL = defaultSpotifyBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &SpotifyClient{
		tokens:     tokens,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Spotify API response structures
type spotifyArtist struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Genres    []string       `json:"genres"`
	Images    []spotifyImage `json:"images"`
	Followers struct {
		Total int `json:"total"`
	} `json:"followers"`
}

type spotifyAlbumsPage struct {
	Href     string               `json:"href"`
	Items    []spotifySimpleAlbum `json:"items"`
	Limit    int                  `json:"limit"`
	Next     *string              `json:"next"`
	Offset   int                  `json:"offset"`
	Previous *string              `json:"previous"`
	Total    int                  `json:"total"`
}

type spotifySimpleAlbum struct {
	ID string `json:"id"`
}

type spotifyAlbum struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	ReleaseDate  string              `json:"release_date"`
	TotalTracks  int                 `json:"total_tracks"`
	Images       []spotifyImage      `json:"images"`
	Genres       []string            `json:"genres"`
	ExternalURLs spotifyExternalURLs `json:"external_urls"`
	Tracks       *spotifyTracksPage  `json:"tracks,omitempty"`
}

type spotifyTracksPage struct {
	Items []spotifyTrack `json:"items"`
}

type spotifyTrack struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Duration    int    `json:"duration_ms"`
	TrackNumber int    `json:"track_number"`
}

type spotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type spotifyExternalURLs struct {
	Spotify string `json:"spotify"`
}

// doRequest performs an authenticated GET and decodes the JSON body into result.
func (c *SpotifyClient) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}

	apiURL := c.baseURL + endpoint
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.Value)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}

// GetArtist retrieves the artist profile by ID
func (c *SpotifyClient) GetArtist(ctx context.Context, artistID string) (*ArtistProfile, error) {
	var sa spotifyArtist
	if err := c.doRequest(ctx, "artists/"+url.PathEscape(artistID), nil, &sa); err != nil {
		return nil, err
	}

	return &ArtistProfile{
		Name:      sa.Name,
		Followers: sa.Followers.Total,
		Genres:    nonNilStrings(sa.Genres),
		Images:    convertSpotifyImages(sa.Images),
	}, nil
}

// ListAlbumIDs returns the first page of the artist's albums. Paging fields
// of the envelope are discarded.
func (c *SpotifyClient) ListAlbumIDs(ctx context.Context, artistID string) ([]AlbumSummary, error) {
	params := url.Values{}
	params.Set("limit", "50")

	var page spotifyAlbumsPage
	if err := c.doRequest(ctx, "artists/"+url.PathEscape(artistID)+"/albums", params, &page); err != nil {
		return nil, err
	}

	albums := make([]AlbumSummary, 0, len(page.Items))
	for _, item := range page.Items {
		albums = append(albums, AlbumSummary{ID: item.ID})
	}
	return albums, nil
}

// GetAlbumDetail retrieves full album details including tracks by ID
func (c *SpotifyClient) GetAlbumDetail(ctx context.Context, albumID string) (*AlbumDetail, error) {
	var sa spotifyAlbum
	if err := c.doRequest(ctx, "albums/"+url.PathEscape(albumID), nil, &sa); err != nil {
		return nil, err
	}

	tracks := []Track{}
	if sa.Tracks != nil {
		for _, st := range sa.Tracks.Items {
			tracks = append(tracks, Track{
				ID:          st.ID,
				Name:        st.Name,
				DurationMS:  st.Duration,
				TrackNumber: st.TrackNumber,
			})
		}
	}

	return &AlbumDetail{
		ID:          sa.ID,
		Name:        sa.Name,
		ReleaseDate: sa.ReleaseDate,
		TotalTracks: sa.TotalTracks,
		Images:      convertSpotifyImages(sa.Images),
		Genres:      nonNilStrings(sa.Genres),
		ExternalURL: sa.ExternalURLs.Spotify,
		Tracks:      tracks,
	}, nil
}

func convertSpotifyImages(in []spotifyImage) []Image {
	images := make([]Image, 0, len(in))
	for _, img := range in {
		images = append(images, Image{URL: img.URL, Width: img.Width, Height: img.Height})
	}
	return images
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
