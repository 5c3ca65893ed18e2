package locale

import "strings"

// TourDate is one upcoming show as written by the editors.
type TourDate struct {
	Date     string `json:"date"`
	Location string `json:"location"`
	Venue    string `json:"venue"`
	Status   string `json:"status"`
	Href     string `json:"href"`
}

// StatusClass is the availability bucket a show is styled with.
type StatusClass string

const (
	StatusSoldOut       StatusClass = "sold-out"
	StatusAlmostSoldOut StatusClass = "almost-sold-out"
	StatusAvailable     StatusClass = "available"
)

// Class buckets the free-text status. Anything that is not "sold out" or
// "almost sold out" (in any letter case) counts as available.
func (d TourDate) Class() StatusClass {
	switch strings.ToLower(strings.TrimSpace(d.Status)) {
	case "sold out":
		return StatusSoldOut
	case "almost sold out":
		return StatusAlmostSoldOut
	default:
		return StatusAvailable
	}
}

// SoldOut reports whether tickets can no longer be bought.
func (d TourDate) SoldOut() bool {
	return d.Class() == StatusSoldOut
}
