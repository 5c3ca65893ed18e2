package page

import (
	"fmt"
	"time"

	"facethewall/internal/musicapi"
)

const (
	previewTracks  = 4
	previewGenres  = 2
	releaseDateFmt = "Jan 2, 2006"
)

// newAlbumCard projects an album onto what the music section shows.
func newAlbumCard(album musicapi.AlbumDetail) AlbumCard {
	card := AlbumCard{
		ID:          album.ID,
		Name:        album.Name,
		Cover:       fallbackAlbumCover,
		ReleaseDate: album.ReleaseDate,
		TotalTracks: album.TotalTracks,
		Genres:      firstN(album.Genres, previewGenres),
		ListenURL:   album.ExternalURL,
		Tracks:      []TrackRow{},
	}
	if len(album.Images) > 0 && album.Images[0].URL != "" {
		card.Cover = album.Images[0].URL
	}
	card.ReleaseYear, card.FormattedDate = formatReleaseDate(album.ReleaseDate)

	for i, track := range album.Tracks {
		if i == previewTracks {
			break
		}
		number := track.TrackNumber
		if number == 0 {
			number = i + 1
		}
		card.Tracks = append(card.Tracks, TrackRow{
			Number:   number,
			Name:     track.Name,
			Duration: formatDuration(track.DurationMS),
		})
	}
	if len(album.Tracks) > previewTracks {
		card.MoreTracks = len(album.Tracks) - previewTracks
	}

	return card
}

// formatDuration renders milliseconds as m:ss. Minutes are not capped.
func formatDuration(ms int) string {
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// formatReleaseDate handles the day, month and year precisions catalogs use.
func formatReleaseDate(date string) (year, formatted string) {
	layouts := []struct {
		layout string
		output string
	}{
		{"2006-01-02", releaseDateFmt},
		{"2006-01", "Jan 2006"},
		{"2006", "2006"},
	}
	for _, l := range layouts {
		t, err := time.Parse(l.layout, date)
		if err != nil {
			continue
		}
		return t.Format("2006"), t.Format(l.output)
	}
	return "", date
}

func firstN(in []string, n int) []string {
	if len(in) <= n {
		out := make([]string, len(in))
		copy(out, in)
		return out
	}
	out := make([]string, n)
	copy(out, in[:n])
	return out
}
