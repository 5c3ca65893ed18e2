package page

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"facethewall/internal/locale"
	"facethewall/internal/musicapi"
	"facethewall/internal/store"
)

type stubCatalog struct {
	artist    *musicapi.ArtistProfile
	artistErr error
	albums    []musicapi.AlbumSummary
	albumsErr error
	details   map[string]*musicapi.AlbumDetail
	detailErr map[string]error
}

func (s *stubCatalog) GetArtist(ctx context.Context, id string) (*musicapi.ArtistProfile, error) {
	if s.artistErr != nil {
		return nil, s.artistErr
	}
	return s.artist, nil
}

func (s *stubCatalog) ListAlbumIDs(ctx context.Context, id string) ([]musicapi.AlbumSummary, error) {
	if s.albumsErr != nil {
		return nil, s.albumsErr
	}
	return s.albums, nil
}

func (s *stubCatalog) GetAlbumDetail(ctx context.Context, id string) (*musicapi.AlbumDetail, error) {
	if err := s.detailErr[id]; err != nil {
		return nil, err
	}
	d, ok := s.details[id]
	if !ok {
		return nil, &musicapi.UpstreamError{Status: http.StatusNotFound}
	}
	return d, nil
}

type stubImages struct {
	images []store.Image
	err    error
}

func (s stubImages) ListImages(context.Context) ([]store.Image, error) {
	return s.images, s.err
}

type stubBundles struct {
	bundle *locale.Bundle
}

func (s stubBundles) Load(code locale.Code) (*locale.Bundle, error) {
	if s.bundle == nil {
		return nil, &locale.LoadError{Code: code}
	}
	return s.bundle, nil
}

func newTestService(t *testing.T, catalog musicapi.Catalog, images ImageStore) Service {
	t.Helper()
	bundles, err := locale.EmbeddedBundles(locale.Supported)
	if err != nil {
		t.Fatalf("EmbeddedBundles: %v", err)
	}
	resolver, err := locale.NewResolver(locale.Supported, locale.Default)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return New(catalog, images, bundles, resolver, "ftw")
}

func scenarioCatalog() *stubCatalog {
	return &stubCatalog{
		artist: &musicapi.ArtistProfile{Name: "Face The Wall", Followers: 3000},
		albums: []musicapi.AlbumSummary{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		details: map[string]*musicapi.AlbumDetail{
			"A": {ID: "A", Name: "Faces of Death", TotalTracks: 10},
			"C": {ID: "C", Name: "Single", TotalTracks: 3},
		},
		detailErr: map[string]error{
			"B": &musicapi.UpstreamError{Status: http.StatusInternalServerError, Body: "oops"},
		},
	}
}

func sixImages() []store.Image {
	return []store.Image{
		{ID: 1, URL: "/img/simon.jpg"},
		{ID: 2, URL: "/img/michal.jpg"},
		{ID: 3, URL: "/img/leo.jpg"},
		{ID: 4, URL: "/img/about.jpg"},
		{ID: 5, URL: "/img/timotej.jpg"},
		{ID: 6, URL: "/img/bg.jpg", Description: "Stage at Randal"},
	}
}

func TestRenderDropsFailedAlbums(t *testing.T) {
	svc := newTestService(t, scenarioCatalog(), stubImages{images: sixImages()})

	page, err := svc.Render(context.Background(), "en")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if page.Hero.NumAlbums != 2 || page.Hero.TotalAlbumTracks != 13 {
		t.Fatalf("expected 2 albums / 13 tracks, got %d / %d", page.Hero.NumAlbums, page.Hero.TotalAlbumTracks)
	}
	if got := page.Hero.Stats[0].Value; got != "3000+" {
		t.Fatalf("expected followers stat 3000+, got %q", got)
	}
	if got := page.Hero.Stats[1].Value; got != "2" {
		t.Fatalf("expected album stat 2, got %q", got)
	}
	if got := page.Hero.Stats[2].Value; got != "13+" {
		t.Fatalf("expected songs stat 13+, got %q", got)
	}
	if len(page.Music.Albums) != 2 || page.Music.Albums[0].ID != "A" || page.Music.Albums[1].ID != "C" {
		t.Fatalf("unexpected album cards %+v", page.Music.Albums)
	}
	if !page.Partial {
		t.Fatal("expected page to be marked partial")
	}
}

func TestRenderAlbumFiguresAgree(t *testing.T) {
	catalog := scenarioCatalog()
	catalog.detailErr = nil
	catalog.details["B"] = &musicapi.AlbumDetail{ID: "B", TotalTracks: 7}

	page, err := newTestService(t, catalog, stubImages{}).Render(context.Background(), "sk")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	sum := 0
	for _, card := range page.Music.Albums {
		sum += card.TotalTracks
	}
	if page.Hero.NumAlbums != len(page.Music.Albums) || page.Hero.TotalAlbumTracks != sum {
		t.Fatalf("hero figures disagree with album cards: %+v", page.Hero)
	}
	if page.Partial {
		t.Fatal("expected complete page")
	}
}

func TestRenderResolvesLocale(t *testing.T) {
	svc := newTestService(t, scenarioCatalog(), stubImages{})

	tests := []struct {
		requested string
		want      locale.Code
		navHome   string
	}{
		{"en", locale.English, "Home"},
		{"sk", locale.Slovak, "Domov"},
		{"de", locale.Slovak, "Domov"},
		{"", locale.Slovak, "Domov"},
	}
	for _, tc := range tests {
		page, err := svc.Render(context.Background(), tc.requested)
		if err != nil {
			t.Fatalf("Render(%q): %v", tc.requested, err)
		}
		if page.Locale != tc.want {
			t.Fatalf("Render(%q) locale = %q, want %q", tc.requested, page.Locale, tc.want)
		}
		if page.Header[0].Label != tc.navHome || page.Header[0].Href != "#home" {
			t.Fatalf("Render(%q) unexpected header %+v", tc.requested, page.Header[0])
		}
		active := 0
		for _, l := range page.Languages {
			if l.Active {
				active++
				if l.Code != tc.want {
					t.Fatalf("wrong active language %q", l.Code)
				}
			}
		}
		if active != 1 {
			t.Fatalf("expected exactly one active language, got %d", active)
		}
	}
}

func TestRenderImageSlots(t *testing.T) {
	page, err := newTestService(t, scenarioCatalog(), stubImages{images: sixImages()}).Render(context.Background(), "en")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	wantPhotos := map[string]string{
		"LEO MEDVED":      "/img/leo.jpg",
		"SIMON VICIAN":    "/img/simon.jpg",
		"MICHAL LAMPER":   "/img/michal.jpg",
		"TIMOTEJ PANUSKA": "/img/timotej.jpg",
	}
	for _, m := range page.Members {
		if m.Photo != wantPhotos[m.Name] {
			t.Fatalf("%s: expected %s, got %s", m.Name, wantPhotos[m.Name], m.Photo)
		}
	}
	if page.About.Photo.URL != "/img/about.jpg" {
		t.Fatalf("unexpected about photo %q", page.About.Photo.URL)
	}
	if page.Background.URL != "/img/bg.jpg" || page.Background.Alt != "Stage at Randal" {
		t.Fatalf("unexpected background %+v", page.Background)
	}
}

func TestRenderImageFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		images stubImages
	}{
		{"store error", stubImages{err: &store.StoreError{Op: "select images", Err: errors.New("down")}}},
		{"empty table", stubImages{images: []store.Image{}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page, err := newTestService(t, scenarioCatalog(), tc.images).Render(context.Background(), "en")
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			for _, m := range page.Members {
				if m.Photo != "/fallback-image.jpg" {
					t.Fatalf("%s: expected fallback photo, got %s", m.Name, m.Photo)
				}
			}
			if page.About.Photo.URL != "/fallback-image.jpg" {
				t.Fatalf("unexpected about photo %q", page.About.Photo.URL)
			}
			if page.Background.URL != "/fallback-bg.jpg" || page.Background.Alt != "Background" {
				t.Fatalf("unexpected background %+v", page.Background)
			}
		})
	}
}

func TestRenderShortImageTable(t *testing.T) {
	images := sixImages()[:3]
	page, err := newTestService(t, scenarioCatalog(), stubImages{images: images}).Render(context.Background(), "en")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, m := range page.Members {
		switch m.Name {
		case "TIMOTEJ PANUSKA":
			if m.Photo != "/fallback-image.jpg" {
				t.Fatalf("expected fallback for missing slot, got %s", m.Photo)
			}
		case "LEO MEDVED":
			if m.Photo != "/img/leo.jpg" {
				t.Fatalf("expected leo photo, got %s", m.Photo)
			}
		}
	}
}

func TestRenderFatalErrors(t *testing.T) {
	authErr := &musicapi.AuthError{Status: http.StatusBadRequest, Body: "invalid_client"}

	tests := []struct {
		name    string
		catalog *stubCatalog
		check   func(error) bool
	}{
		{
			name:    "artist auth failure",
			catalog: &stubCatalog{artistErr: authErr},
			check: func(err error) bool {
				var target *musicapi.AuthError
				return errors.As(err, &target)
			},
		},
		{
			name: "album list upstream failure",
			catalog: &stubCatalog{
				artist:    &musicapi.ArtistProfile{},
				albumsErr: &musicapi.UpstreamError{Status: http.StatusServiceUnavailable},
			},
			check: func(err error) bool {
				var target *musicapi.UpstreamError
				return errors.As(err, &target)
			},
		},
		{
			name: "album detail auth failure",
			catalog: func() *stubCatalog {
				c := scenarioCatalog()
				c.detailErr["B"] = &musicapi.AuthError{Status: http.StatusUnauthorized, Body: "expired"}
				return c
			}(),
			check: func(err error) bool {
				var target *musicapi.AuthError
				return errors.As(err, &target) && target.Status == http.StatusUnauthorized
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newTestService(t, tc.catalog, stubImages{}).Render(context.Background(), "sk")
			if err == nil || !tc.check(err) {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}
}

func TestRenderMissingBundle(t *testing.T) {
	resolver, _ := locale.NewResolver(locale.Supported, locale.Default)
	svc := New(scenarioCatalog(), stubImages{}, stubBundles{}, resolver, "ftw")

	_, err := svc.Render(context.Background(), "en")
	var loadErr *locale.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}

func TestRenderTour(t *testing.T) {
	resolver, _ := locale.NewResolver(locale.Supported, locale.Default)
	bundle := &locale.Bundle{
		Tour: locale.Tour{
			Title: "Shows",
			Dates: []locale.TourDate{
				{Date: "2025-11-14", Venue: "Randal", Status: "Sold Out", Href: "randal"},
				{Date: "2025-11-22", Venue: "Collosseum", Status: "almost sold out", Href: "coll"},
				{Date: "2025-12-06", Venue: "Stanica", Status: "Available", Href: "stanica"},
			},
		},
	}
	svc := New(scenarioCatalog(), stubImages{}, stubBundles{bundle: bundle}, resolver, "ftw")

	page, err := svc.Render(context.Background(), "en")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	dates := page.Tour.Dates
	if len(dates) != 3 || page.Tour.NoShows {
		t.Fatalf("unexpected tour %+v", page.Tour)
	}
	if dates[0].Class != locale.StatusSoldOut || dates[0].TicketURL != "" {
		t.Fatalf("sold out show must have no ticket link: %+v", dates[0])
	}
	if dates[1].Class != locale.StatusAlmostSoldOut || dates[1].TicketURL != "/tickets/coll" {
		t.Fatalf("unexpected almost sold out show %+v", dates[1])
	}
	if dates[2].Class != locale.StatusAvailable || dates[2].TicketURL != "/tickets/stanica" {
		t.Fatalf("unexpected available show %+v", dates[2])
	}
	if page.Hero.NextShow == nil || page.Hero.NextShow.Venue != "Randal" {
		t.Fatalf("expected next show in hero, got %+v", page.Hero.NextShow)
	}

	bundle.Tour.Dates = nil
	page, err = svc.Render(context.Background(), "en")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !page.Tour.NoShows || page.Tour.EmptyMessage != "No upcoming shows" || page.Hero.NextShow != nil {
		t.Fatalf("expected empty tour state, got %+v", page.Tour)
	}
}

func TestCatalogAndAlbum(t *testing.T) {
	svc := newTestService(t, scenarioCatalog(), stubImages{})

	view, err := svc.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if view.Artist.Followers != 3000 || len(view.Albums) != 3 {
		t.Fatalf("unexpected catalog view %+v", view)
	}

	card, err := svc.Album(context.Background(), "A")
	if err != nil {
		t.Fatalf("Album: %v", err)
	}
	if card.Name != "Faces of Death" {
		t.Fatalf("unexpected card %+v", card)
	}

	_, err = svc.Album(context.Background(), "B")
	var upstream *musicapi.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}
