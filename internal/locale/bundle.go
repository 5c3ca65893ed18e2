package locale

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed locales/*.json
var embedded embed.FS

// Bundle holds every translated string the page uses for one language.
type Bundle struct {
	Nav      Nav      `json:"nav"`
	Buttons  Buttons  `json:"buttons"`
	Hero     Hero     `json:"hero"`
	About    About    `json:"about"`
	OurMusic OurMusic `json:"our_music"`
	Tour     Tour     `json:"tour"`
	Contact  Contact  `json:"contact"`
}

type Nav struct {
	Home    string `json:"home"`
	About   string `json:"about"`
	Music   string `json:"music"`
	Shows   string `json:"shows"`
	Contact string `json:"contact"`
}

type Buttons struct {
	ListenUs  string `json:"listenUs"`
	FollowUs  string `json:"followUs"`
	TourDates string `json:"tourDates"`
}

type Hero struct {
	Subtitle        string `json:"subtitle"`
	ListenButton    string `json:"listenButton"`
	Followers       string `json:"followers"`
	Albums          string `json:"albums"`
	Songs           string `json:"songs"`
	TourDivTitle    string `json:"tourDivTitle"`
	TourDivSubtitle string `json:"tourDivSubtitle"`
}

type About struct {
	Title        string `json:"title"`
	Description1 string `json:"description1"`
	Description2 string `json:"description2"`
	Description3 string `json:"description3"`
	Description4 string `json:"description4"`
	Description5 string `json:"description5"`
	Tile1        string `json:"tile1"`
	Tile2        string `json:"tile2"`
	Tile3        string `json:"tile3"`
	Tile4        string `json:"tile4"`
}

// Paragraphs returns the about copy in reading order.
func (a About) Paragraphs() []string {
	return []string{a.Description1, a.Description2, a.Description3, a.Description4, a.Description5}
}

// TileLabels returns the captions of the four about tiles.
func (a About) TileLabels() []string {
	return []string{a.Tile1, a.Tile2, a.Tile3, a.Tile4}
}

type OurMusic struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Tour struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Dates       []TourDate `json:"dates"`
}

type Contact struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Message        string `json:"message"`
	Required       string `json:"required"`
	SuccessMessage string `json:"successMessage"`
	ErrorMessage   string `json:"errorMessage"`
	Submit         string `json:"submit"`
}

// missingKeys lists the dotted paths of required strings that are empty.
func (b *Bundle) missingKeys() []string {
	fields := []struct {
		key   string
		value string
	}{
		{"nav.home", b.Nav.Home},
		{"nav.about", b.Nav.About},
		{"nav.music", b.Nav.Music},
		{"nav.shows", b.Nav.Shows},
		{"nav.contact", b.Nav.Contact},
		{"buttons.listenUs", b.Buttons.ListenUs},
		{"buttons.followUs", b.Buttons.FollowUs},
		{"buttons.tourDates", b.Buttons.TourDates},
		{"hero.subtitle", b.Hero.Subtitle},
		{"hero.listenButton", b.Hero.ListenButton},
		{"hero.followers", b.Hero.Followers},
		{"hero.albums", b.Hero.Albums},
		{"hero.songs", b.Hero.Songs},
		{"hero.tourDivTitle", b.Hero.TourDivTitle},
		{"hero.tourDivSubtitle", b.Hero.TourDivSubtitle},
		{"about.title", b.About.Title},
		{"about.description1", b.About.Description1},
		{"about.description2", b.About.Description2},
		{"about.description3", b.About.Description3},
		{"about.description4", b.About.Description4},
		{"about.description5", b.About.Description5},
		{"about.tile1", b.About.Tile1},
		{"about.tile2", b.About.Tile2},
		{"about.tile3", b.About.Tile3},
		{"about.tile4", b.About.Tile4},
		{"our_music.title", b.OurMusic.Title},
		{"our_music.description", b.OurMusic.Description},
		{"tour.title", b.Tour.Title},
		{"tour.description", b.Tour.Description},
		{"contact.title", b.Contact.Title},
		{"contact.description", b.Contact.Description},
		{"contact.name", b.Contact.Name},
		{"contact.email", b.Contact.Email},
		{"contact.message", b.Contact.Message},
		{"contact.required", b.Contact.Required},
		{"contact.successMessage", b.Contact.SuccessMessage},
		{"contact.errorMessage", b.Contact.ErrorMessage},
		{"contact.submit", b.Contact.Submit},
	}

	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.key)
		}
	}
	for i, d := range b.Tour.Dates {
		if d.Date == "" || d.Venue == "" {
			missing = append(missing, fmt.Sprintf("tour.dates[%d]", i))
		}
	}
	return missing
}

// LoadError reports that no bundle exists for a code.
type LoadError struct {
	Code Code
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("no locale bundle for %q", e.Code)
}

// Bundles is the fixed set of bundles for the supported languages, decoded
// once at start-up.
type Bundles struct {
	supported []Code
	bundles   map[Code]*Bundle
}

// EmbeddedBundles decodes the bundles compiled into the binary.
func EmbeddedBundles(supported []Code) (*Bundles, error) {
	return LoadBundles(embedded, supported)
}

// LoadBundles decodes locales/<code>.json from fsys for every supported code.
// A missing file leaves the code without a bundle, which Validate reports.
// Malformed JSON or unknown keys fail immediately.
func LoadBundles(fsys fs.FS, supported []Code) (*Bundles, error) {
	b := &Bundles{
		supported: supported,
		bundles:   make(map[Code]*Bundle, len(supported)),
	}
	for _, code := range supported {
		data, err := fs.ReadFile(fsys, "locales/"+string(code)+".json")
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", code, err)
		}

		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		var bundle Bundle
		if err := dec.Decode(&bundle); err != nil {
			return nil, fmt.Errorf("decode locale %s: %w", code, err)
		}
		b.bundles[code] = &bundle
	}
	return b, nil
}

// Load returns the bundle for code.
func (b *Bundles) Load(code Code) (*Bundle, error) {
	bundle, ok := b.bundles[code]
	if !ok {
		return nil, &LoadError{Code: code}
	}
	return bundle, nil
}

// Validate checks every supported code has a complete bundle and returns all
// problems in one error.
func (b *Bundles) Validate() error {
	var problems []string
	for _, code := range b.supported {
		bundle, ok := b.bundles[code]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: bundle missing", code))
			continue
		}
		for _, key := range bundle.missingKeys() {
			problems = append(problems, fmt.Sprintf("%s: %s is empty", code, key))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("locale bundles invalid:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
