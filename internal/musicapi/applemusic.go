package musicapi

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultAppleMusicBaseURL = "https://api.music.apple.com/v1/"

	// Apple accepts developer tokens for up to six months; they are re-signed
	// far more often than that.
	developerTokenLifetime = 6 * 30 * 24 * time.Hour
	developerTokenReuse    = 12 * time.Hour
)

// DeveloperToken signs Apple Music developer tokens (ES256 JWTs) and caches
// them.
type DeveloperToken struct {
	keyID      string
	teamID     string
	privateKey *ecdsa.PrivateKey
	now        func() time.Time

	mu       sync.Mutex
	token    AccessToken
	signedAt time.Time
}

// NewDeveloperToken parses a PEM encoded EC private key (PKCS#8 or SEC 1).
func NewDeveloperToken(keyID, teamID, privateKeyPEM string) (*DeveloperToken, error) {
	privateKey, err := jwt.ParseECPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return &DeveloperToken{
		keyID:      keyID,
		teamID:     teamID,
		privateKey: privateKey,
		now:        time.Now,
	}, nil
}

// AccessToken returns a signed developer token.
func (d *DeveloperToken) AccessToken(ctx context.Context) (AccessToken, error) {
	if err := ctx.Err(); err != nil {
		return AccessToken{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if d.token.Value != "" && now.Sub(d.signedAt) < developerTokenReuse {
		return d.token, nil
	}

	expiresAt := now.Add(developerTokenLifetime)
	claims := jwt.MapClaims{
		"iss": d.teamID,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = d.keyID

	tokenString, err := token.SignedString(d.privateKey)
	if err != nil {
		return AccessToken{}, &AuthError{Err: fmt.Errorf("sign token: %w", err)}
	}

	d.token = AccessToken{Value: tokenString, ExpiresAt: expiresAt}
	d.signedAt = now
	return d.token, nil
}

// AppleMusicClient implements Catalog against the Apple Music catalog API.
// Apple Music does not publish follower counts, so profiles report zero.
type AppleMusicClient struct {
	tokens     TokenProvider
	baseURL    string
	storefront string
	httpClient *http.Client
}

// NewAppleMusicClient creates a new Apple Music API client
func NewAppleMusicClient(tokens TokenProvider, storefront, baseURL string, httpClient *http.Client) *AppleMusicClient {
	if baseURL == "" {
		baseURL = defaultAppleMusicBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if storefront == "" {
		storefront = "sk"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &AppleMusicClient{
		tokens:     tokens,
		baseURL:    baseURL,
		storefront: storefront,
		httpClient: httpClient,
	}
}

// Apple Music API response structures
type appleMusicArtistsResponse struct {
	Data []appleMusicArtist `json:"data"`
}

type appleMusicArtist struct {
	ID         string `json:"id"`
	Attributes struct {
		Name       string            `json:"name"`
		GenreNames []string          `json:"genreNames"`
		Artwork    appleMusicArtwork `json:"artwork"`
	} `json:"attributes"`
}

type appleMusicAlbumsResponse struct {
	Data []appleMusicAlbum `json:"data"`
	Next string            `json:"next"`
}

type appleMusicAlbum struct {
	ID            string                    `json:"id"`
	Attributes    appleMusicAlbumAttributes `json:"attributes"`
	Relationships struct {
		Tracks struct {
			Data []appleMusicSong `json:"data"`
		} `json:"tracks"`
	} `json:"relationships"`
}

type appleMusicAlbumAttributes struct {
	Name        string            `json:"name"`
	ReleaseDate string            `json:"releaseDate"`
	GenreNames  []string          `json:"genreNames"`
	TrackCount  int               `json:"trackCount"`
	Artwork     appleMusicArtwork `json:"artwork"`
	URL         string            `json:"url"`
}

type appleMusicSong struct {
	ID         string `json:"id"`
	Attributes struct {
		Name             string `json:"name"`
		DurationInMillis int    `json:"durationInMillis"`
		TrackNumber      int    `json:"trackNumber"`
	} `json:"attributes"`
}

type appleMusicArtwork struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// image expands the {w}x{h} template Apple returns for artwork.
func (a appleMusicArtwork) image() (Image, bool) {
	if a.URL == "" {
		return Image{}, false
	}
	u := strings.ReplaceAll(a.URL, "{w}", strconv.Itoa(a.Width))
	u = strings.ReplaceAll(u, "{h}", strconv.Itoa(a.Height))
	return Image{URL: u, Width: a.Width, Height: a.Height}, true
}

func (c *AppleMusicClient) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}

	apiURL := c.baseURL + "catalog/" + url.PathEscape(c.storefront) + "/" + endpoint
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
func (c *AppleMusicClient) GetArtist(ctx context.Context, artistID string) (*ArtistProfile, error) {
	var result appleMusicArtistsResponse
	if err := c.doRequest(ctx, "artists/"+url.PathEscape(artistID), nil, &result); err != nil {
		return nil, err
	}
	if len(result.Data) == 0 {
		return nil, &UpstreamError{Status: http.StatusNotFound, Body: "artist not found"}
	}

	artist := result.Data[0]
	images := []Image{}
	if img, ok := artist.Attributes.Artwork.image(); ok {
		images = append(images, img)
	}

	return &ArtistProfile{
		Name:   artist.Attributes.Name,
		Genres: nonNilStrings(artist.Attributes.GenreNames),
		Images: images,
	}, nil
}

// ListAlbumIDs returns the first page of the artist's albums.
func (c *AppleMusicClient) ListAlbumIDs(ctx context.Context, artistID string) ([]AlbumSummary, error) {
	var result appleMusicAlbumsResponse
	if err := c.doRequest(ctx, "artists/"+url.PathEscape(artistID)+"/albums", nil, &result); err != nil {
		return nil, err
	}

	albums := make([]AlbumSummary, 0, len(result.Data))
	for _, item := range result.Data {
		albums = append(albums, AlbumSummary{ID: item.ID})
	}
	return albums, nil
}

// GetAlbumDetail retrieves full album details including tracks by ID
func (c *AppleMusicClient) GetAlbumDetail(ctx context.Context, albumID string) (*AlbumDetail, error) {
	var result appleMusicAlbumsResponse
	if err := c.doRequest(ctx, "albums/"+url.PathEscape(albumID), nil, &result); err != nil {
		return nil, err
	}
	if len(result.Data) == 0 {
		return nil, &UpstreamError{Status: http.StatusNotFound, Body: "album not found"}
	}

	am := result.Data[0]
	tracks := make([]Track, 0, len(am.Relationships.Tracks.Data))
	for _, song := range am.Relationships.Tracks.Data {
		tracks = append(tracks, Track{
			ID:          song.ID,
			Name:        song.Attributes.Name,
			DurationMS:  song.Attributes.DurationInMillis,
			TrackNumber: song.Attributes.TrackNumber,
		})
	}

	images := []Image{}
	if img, ok := am.Attributes.Artwork.image(); ok {
		images = append(images, img)
	}

	return &AlbumDetail{
		ID:          am.ID,
		Name:        am.Attributes.Name,
		ReleaseDate: am.Attributes.ReleaseDate,
		TotalTracks: am.Attributes.TrackCount,
		Images:      images,
		Genres:      nonNilStrings(am.Attributes.GenreNames),
		ExternalURL: am.Attributes.URL,
		Tracks:      tracks,
	}, nil
}
