package park

import "fmt"

// Sentinel values substituted for fields whose marker is absent.
const (
	NoName    = "no name"
	NoCity    = "no city"
	NoState   = "no state"
	NoZipcode = "no zipcode"
	NoPhone   = "no phone"
)

// Record is one park as read from its detail page. Every field is populated,
// possibly with a sentinel. Category may be empty: some sites carry a blank
// designation.
type Record struct {
	Name     string
	Category string
	// Address is "<city>, <state>".
	Address string
	Zipcode string
	Phone   string
}

// Info renders the one-line summary shown in park listings.
func (r Record) Info() string {
	return fmt.Sprintf("%s (%s): %s %s", r.Name, r.Category, r.Address, r.Zipcode)
}

// HasNumericZipcode reports whether Zipcode is a non-empty run of ASCII
// digits. ZIP+4 codes such as "82190-0168" are not numeric.
func (r Record) HasNumericZipcode() bool {
	if r.Zipcode == "" {
		return false
	}
	for _, c := range r.Zipcode {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
