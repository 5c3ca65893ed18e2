package locale

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestResolve(t *testing.T) {
	r, err := NewResolver(Supported, Default)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	tests := []struct {
		input string
		want  Code
	}{
		{"sk", Slovak},
		{"en", English},
		{"de", Slovak},
		{"", Slovak},
		{"EN", Slovak},
		{"en-US", Slovak},
		{"../etc/passwd", Slovak},
	}
	for _, tc := range tests {
		if got := r.Resolve(tc.input); got != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNewResolverRejectsUnsupportedDefault(t *testing.T) {
	if _, err := NewResolver(Supported, "de"); err == nil {
		t.Fatal("expected error for unsupported default")
	}
	if _, err := NewResolver([]Code{"not a tag!"}, "not a tag!"); err == nil {
		t.Fatal("expected error for malformed tag")
	}
}

func TestParseCode(t *testing.T) {
	if _, err := ParseCode("en"); err != nil {
		t.Fatalf("ParseCode(en): %v", err)
	}
	if _, err := ParseCode("x_y_z!"); err == nil {
		t.Fatal("expected malformed tag error")
	}
}

func TestEmbeddedBundlesAreComplete(t *testing.T) {
	bundles, err := EmbeddedBundles(Supported)
	if err != nil {
		t.Fatalf("EmbeddedBundles: %v", err)
	}
	if err := bundles.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	for _, code := range Supported {
		b, err := bundles.Load(code)
		if err != nil {
			t.Fatalf("Load(%s): %v", code, err)
		}
		if len(b.About.Paragraphs()) != 5 || len(b.About.TileLabels()) != 4 {
			t.Fatalf("%s: unexpected about section", code)
		}
	}
}

func TestLoadMissingBundle(t *testing.T) {
	enOnly, err := embeddedSubset("en")
	if err != nil {
		t.Fatal(err)
	}
	bundles, err := LoadBundles(enOnly, Supported)
	if err != nil {
		t.Fatalf("LoadBundles: %v", err)
	}

	_, err = bundles.Load(Slovak)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) || loadErr.Code != Slovak {
		t.Fatalf("expected LoadError for sk, got %v", err)
	}

	err = bundles.Validate()
	if err == nil || !strings.Contains(err.Error(), "sk: bundle missing") {
		t.Fatalf("expected missing bundle in validation error, got %v", err)
	}
}

func TestValidateReportsEmptyKeys(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/sk.json": {Data: []byte(`{"nav":{"home":"Domov"}}`)},
	}
	bundles, err := LoadBundles(fsys, []Code{Slovak})
	if err != nil {
		t.Fatalf("LoadBundles: %v", err)
	}
	err = bundles.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if strings.Contains(err.Error(), "nav.home") {
		t.Fatalf("nav.home is set and must not be reported: %v", err)
	}
	for _, key := range []string{"hero.followers", "contact.required", "contact.successMessage", "contact.errorMessage"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected %s in %v", key, err)
		}
	}
}

func TestLoadBundlesRejectsUnknownKeys(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/sk.json": {Data: []byte(`{"navigation":{}}`)},
	}
	if _, err := LoadBundles(fsys, []Code{Slovak}); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

// embeddedSubset copies the embedded bundles for the given codes into a MapFS.
func embeddedSubset(codes ...string) (fstest.MapFS, error) {
	out := fstest.MapFS{}
	for _, c := range codes {
		data, err := embedded.ReadFile("locales/" + c + ".json")
		if err != nil {
			return nil, err
		}
		out["locales/"+c+".json"] = &fstest.MapFile{Data: data}
	}
	return out, nil
}

func TestTourDateClass(t *testing.T) {
	tests := []struct {
		status  string
		want    StatusClass
		soldOut bool
	}{
		{"Sold out", StatusSoldOut, true},
		{"SOLD OUT", StatusSoldOut, true},
		{"almost sold out", StatusAlmostSoldOut, false},
		{"Almost Sold Out", StatusAlmostSoldOut, false},
		{"Available", StatusAvailable, false},
		{"", StatusAvailable, false},
		{"few left", StatusAvailable, false},
	}
	for _, tc := range tests {
		d := TourDate{Status: tc.status}
		if got := d.Class(); got != tc.want {
			t.Errorf("Class(%q) = %q, want %q", tc.status, got, tc.want)
		}
		if got := d.SoldOut(); got != tc.soldOut {
			t.Errorf("SoldOut(%q) = %v, want %v", tc.status, got, tc.soldOut)
		}
	}
}
