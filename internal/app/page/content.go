package page

import (
	"facethewall/internal/locale"
	"facethewall/internal/store"
)

// Fallback assets served from the front end's public directory.
const (
	fallbackMemberPhoto = "/fallback-image.jpg"
	fallbackBackground  = "/fallback-bg.jpg"
	fallbackAlbumCover  = "/fallback-album.jpg"
)

// imageSlot names the role a row of the image table plays on the page. The
// role is the row's position in id order.
type imageSlot struct {
	index    int
	fallback string
}

var (
	slotSimon      = imageSlot{index: 0, fallback: fallbackMemberPhoto}
	slotMichal     = imageSlot{index: 1, fallback: fallbackMemberPhoto}
	slotLeo        = imageSlot{index: 2, fallback: fallbackMemberPhoto}
	slotAboutPhoto = imageSlot{index: 3, fallback: fallbackMemberPhoto}
	slotTimotej    = imageSlot{index: 4, fallback: fallbackMemberPhoto}
	slotBackground = imageSlot{index: 5, fallback: fallbackBackground}
)

// resolve returns the image in the slot, or nil when the table is too short
// or the row has no URL.
func (s imageSlot) resolve(images []store.Image) *store.Image {
	if s.index < 0 || s.index >= len(images) || images[s.index].URL == "" {
		return nil
	}
	return &images[s.index]
}

func (s imageSlot) url(images []store.Image) string {
	if img := s.resolve(images); img != nil {
		return img.URL
	}
	return s.fallback
}

type memberInfo struct {
	name       string
	instrument string
	instagram  string
	link       string
	slot       imageSlot
}

var members = []memberInfo{
	{
		name:       "LEO MEDVED",
		instrument: "Guitar & VOCALS",
		instagram:  "@leo._medved",
		link:       "https://www.instagram.com/leo._medved/",
		slot:       slotLeo,
	},
	{
		name:       "SIMON VICIAN",
		instrument: "LEAD GUITAR",
		instagram:  "@_s1m0n_f.t.w.",
		link:       "https://www.instagram.com/_s1m0n_f.t.w._/",
		slot:       slotSimon,
	},
	{
		name:       "MICHAL LAMPER",
		instrument: "DRUMMS",
		instagram:  "@siberka_v_analy_jkj_hrubyklat",
		link:       "https://www.instagram.com/siberka_v_analy_jkj_hrubyklat/",
		slot:       slotMichal,
	},
	{
		name:       "TIMOTEJ PANUSKA",
		instrument: "BASS GUITAR",
		instagram:  "@timmcis",
		link:       "https://www.instagram.com/timmcis/",
		slot:       slotTimotej,
	},
}

// aboutTileValues are editorial figures, not derived from any data source.
var aboutTileValues = []string{"5+", "350+", "3000+", "4"}

var headerAnchors = []string{"#home", "#about", "#music", "#shows", "#contact"}

var languageFlags = map[locale.Code]string{
	locale.Slovak:  "/flags/sk.png",
	locale.English: "/flags/en.png",
}

const (
	bookingEmail     = "booking@facethewall.com"
	noShowsMessage   = "No upcoming shows"
	ticketPathPrefix = "/tickets/"
)

var socialLinks = []Link{
	{Name: "Instagram", URL: "https://www.instagram.com/face_.the._wall/"},
	{Name: "TikTok", URL: "https://www.tiktok.com/@face.the.wall"},
	{Name: "YouTube", URL: "https://www.youtube.com/@FaceTheWallBand"},
	{Name: "SoundCloud", URL: "https://soundcloud.com/facethewall/sets/faces-of-death"},
}

var streamingLinks = []Link{
	{Name: "Spotify", URL: "https://open.spotify.com/artist/6zHb8dmI7oyFot5yNStuH1"},
	{Name: "Apple Music", URL: "https://music.apple.com/sk/album/faces-of-death-pt1-ep/1725534161"},
	{Name: "YouTube Music", URL: "https://www.youtube.com/playlist?list=OLAK5uy_k8pzWnDQl-df2x1bLghfh-d9d7VxcgKKw"},
}
