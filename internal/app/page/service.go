package page

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"facethewall/internal/locale"
	"facethewall/internal/logging"
	"facethewall/internal/musicapi"
	"facethewall/internal/store"
)

// ImageStore captures the image reads the page needs.
type ImageStore interface {
	ListImages(ctx context.Context) ([]store.Image, error)
}

// BundleLoader returns the translated copy for a resolved locale.
type BundleLoader interface {
	Load(code locale.Code) (*locale.Bundle, error)
}

// LocaleResolver maps a requested locale onto a supported one.
type LocaleResolver interface {
	Resolve(input string) locale.Code
	Supported() []locale.Code
}

// Service assembles the landing page and the smaller catalog views.
type Service interface {
	Render(ctx context.Context, requested string) (*Page, error)
	Catalog(ctx context.Context) (*CatalogView, error)
	Album(ctx context.Context, albumID string) (*AlbumCard, error)
}

type service struct {
	catalog  musicapi.Catalog
	images   ImageStore
	bundles  BundleLoader
	locales  LocaleResolver
	artistID string
}

// New constructs a Service for the given artist.
func New(catalog musicapi.Catalog, images ImageStore, bundles BundleLoader, locales LocaleResolver, artistID string) Service {
	return &service{
		catalog:  catalog,
		images:   images,
		bundles:  bundles,
		locales:  locales,
		artistID: artistID,
	}
}

// Render builds the page for the requested locale. Auth failures and failed
// artist or album-list calls abort the render; failed albums are dropped and
// a failed image query falls back to placeholder assets.
func (s *service) Render(ctx context.Context, requested string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := logging.WithContext(ctx)

	code := s.locales.Resolve(requested)
	bundle, err := s.bundles.Load(code)
	if err != nil {
		return nil, fmt.Errorf("load locale bundle: %w", err)
	}

	var (
		artist *musicapi.ArtistProfile
		albums []musicapi.AlbumSummary
		images []store.Image
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.catalog.GetArtist(gctx, s.artistID)
		if err != nil {
			return fmt.Errorf("fetch artist: %w", err)
		}
		artist = a
		return nil
	})
	g.Go(func() error {
		ids, err := s.catalog.ListAlbumIDs(gctx, s.artistID)
		if err != nil {
			return fmt.Errorf("list albums: %w", err)
		}
		albums = ids
		return nil
	})
	g.Go(func() error {
		imgs, err := s.images.ListImages(gctx)
		if err != nil {
			logger.Warn().Err(err).Msg("image store unavailable, using fallback assets")
			return nil
		}
		images = imgs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := musicapi.FetchAlbumDetails(ctx, s.catalog, albums)
	details := make([]musicapi.AlbumDetail, 0, len(results))
	for i, r := range results {
		if !r.OK() {
			// An auth failure mid fan-out means every album will fail.
			var authErr *musicapi.AuthError
			if errors.As(r.Err, &authErr) {
				return nil, fmt.Errorf("fetch album details: %w", r.Err)
			}
			event := logger.Warn().Err(r.Err).Str("album_id", albums[i].ID)
			var upstream *musicapi.UpstreamError
			if errors.As(r.Err, &upstream) {
				event = event.Int("status", upstream.Status)
			}
			event.Msg("album dropped from page")
			continue
		}
		details = append(details, r.Value)
	}

	totals := summarize(details, len(albums))
	if totals.partial {
		logger.Warn().
			Int("requested", len(albums)).
			Int("fetched", totals.albums).
			Msg("album figures cover only the albums that loaded")
	}

	return s.assemble(code, bundle, artist, details, images, totals), nil
}

type totals struct {
	albums  int
	tracks  int
	partial bool
}

// summarize counts only albums that were actually fetched, so the album
// count and the track sum always describe the same set.
func summarize(details []musicapi.AlbumDetail, requested int) totals {
	t := totals{albums: len(details)}
	for _, d := range details {
		t.tracks += d.TotalTracks
	}
	t.partial = t.albums != requested
	return t
}

func (s *service) assemble(code locale.Code, b *locale.Bundle, artist *musicapi.ArtistProfile, details []musicapi.AlbumDetail, images []store.Image, t totals) *Page {
	p := &Page{
		Locale:    code,
		Buttons:   b.Buttons,
		Socials:   socialLinks,
		Streaming: streamingLinks,
		Partial:   t.partial,
	}

	for _, c := range s.locales.Supported() {
		p.Languages = append(p.Languages, LanguageOption{Code: c, Flag: languageFlags[c], Active: c == code})
	}

	labels := []string{b.Nav.Home, b.Nav.About, b.Nav.Music, b.Nav.Shows, b.Nav.Contact}
	for i, href := range headerAnchors {
		p.Header = append(p.Header, HeaderLink{Href: href, Label: labels[i]})
	}

	p.Tour = buildTour(b.Tour)

	p.Hero = Hero{
		ArtistName:       artist.Name,
		Subtitle:         b.Hero.Subtitle,
		ListenButton:     b.Hero.ListenButton,
		TourTitle:        b.Hero.TourDivTitle,
		TourSubtitle:     b.Hero.TourDivSubtitle,
		Followers:        artist.Followers,
		NumAlbums:        t.albums,
		TotalAlbumTracks: t.tracks,
		Stats: []Stat{
			{Value: strconv.Itoa(artist.Followers) + "+", Label: b.Hero.Followers},
			{Value: strconv.Itoa(t.albums), Label: b.Hero.Albums},
			{Value: strconv.Itoa(t.tracks) + "+", Label: b.Hero.Songs},
		},
	}
	if len(p.Tour.Dates) > 0 {
		next := p.Tour.Dates[0]
		p.Hero.NextShow = &next
	}

	p.About = About{
		Title:      b.About.Title,
		Paragraphs: b.About.Paragraphs(),
		Photo:      Asset{URL: slotAboutPhoto.url(images), Alt: b.About.Title},
	}
	for i, label := range b.About.TileLabels() {
		p.About.Tiles = append(p.About.Tiles, Stat{Value: aboutTileValues[i], Label: label})
	}

	for _, m := range members {
		p.Members = append(p.Members, Member{
			Name:       m.name,
			Instrument: m.instrument,
			Instagram:  m.instagram,
			Link:       m.link,
			Photo:      m.slot.url(images),
		})
	}

	p.Background = Asset{URL: fallbackBackground, Alt: "Background"}
	if img := slotBackground.resolve(images); img != nil {
		p.Background.URL = img.URL
		if img.Description != "" {
			p.Background.Alt = img.Description
		}
	}

	p.Music = Music{
		Title:       b.OurMusic.Title,
		Description: b.OurMusic.Description,
		Albums:      make([]AlbumCard, 0, len(details)),
	}
	for _, d := range details {
		p.Music.Albums = append(p.Music.Albums, newAlbumCard(d))
	}

	p.Contact = Contact{Contact: b.Contact, BookingEmail: bookingEmail}

	return p
}

func buildTour(t locale.Tour) Tour {
	tour := Tour{
		Title:       t.Title,
		Description: t.Description,
		Dates:       make([]TourDate, 0, len(t.Dates)),
	}
	for _, d := range t.Dates {
		view := TourDate{
			Date:     d.Date,
			Location: d.Location,
			Venue:    d.Venue,
			Status:   d.Status,
			Class:    d.Class(),
			SoldOut:  d.SoldOut(),
		}
		if !view.SoldOut && d.Href != "" {
			view.TicketURL = ticketPathPrefix + d.Href
		}
		tour.Dates = append(tour.Dates, view)
	}
	if len(tour.Dates) == 0 {
		tour.NoShows = true
		tour.EmptyMessage = noShowsMessage
	}
	return tour
}

// Catalog returns the artist profile and album ids without any page copy.
func (s *service) Catalog(ctx context.Context) (*CatalogView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var view CatalogView
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.catalog.GetArtist(gctx, s.artistID)
		if err != nil {
			return fmt.Errorf("fetch artist: %w", err)
		}
		view.Artist = *a
		return nil
	})
	g.Go(func() error {
		ids, err := s.catalog.ListAlbumIDs(gctx, s.artistID)
		if err != nil {
			return fmt.Errorf("list albums: %w", err)
		}
		view.Albums = ids
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &view, nil
}

// Album returns a single album card.
func (s *service) Album(ctx context.Context, albumID string) (*AlbumCard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	detail, err := s.catalog.GetAlbumDetail(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("fetch album %s: %w", albumID, err)
	}
	card := newAlbumCard(*detail)
	return &card, nil
}
