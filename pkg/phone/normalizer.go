package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalidNumber is returned when a number cannot be parsed or is not a valid number.
var ErrInvalidNumber = errors.New("invalid phone number")

const unknown = "Unknown"

// Info is a normalized phone number together with its offline metadata
type Info struct {
	E164     string `json:"e164"`
	Carrier  string `json:"carrier"`
	Region   string `json:"region"`
	TimeZone string `json:"time_zone"`
}

// Normalizer parses raw user input into E.164
type Normalizer interface {
	Parse(raw string) (*Info, error)
}

// libNormalizer implements Normalizer on top of libphonenumber metadata
type libNormalizer struct {
	defaultRegion string
}

// NewNormalizer creates a Normalizer. defaultRegion (ISO 3166 alpha-2, e.g. "IN")
// is used when the input carries no country code.
func NewNormalizer(defaultRegion string) Normalizer {
	return &libNormalizer{defaultRegion: strings.ToUpper(strings.TrimSpace(defaultRegion))}
}

// Parse accepts numbers with or without a leading '+'
func (n *libNormalizer) Parse(raw string) (*Info, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidNumber
	}

	num, ok := n.parse(raw, n.defaultRegion)
	if !ok && !strings.HasPrefix(raw, "+") {
		// "14155552671" typed without the plus sign
		num, ok = n.parse("+"+raw, "")
	}
	if !ok {
		return nil, ErrInvalidNumber
	}

	info := &Info{
		E164:     phonenumbers.Format(num, phonenumbers.E164),
		Carrier:  unknown,
		Region:   unknown,
		TimeZone: unknown,
	}
	if name, err := phonenumbers.GetCarrierForNumber(num, "en"); err == nil && name != "" {
		info.Carrier = name
	}
	if desc, err := phonenumbers.GetGeocodingForNumber(num, "en"); err == nil && desc != "" {
		info.Region = desc
	} else if region := phonenumbers.GetRegionCodeForNumber(num); region != "" {
		info.Region = region
	}
	if zones, err := phonenumbers.GetTimezonesForNumber(num); err == nil && len(zones) > 0 {
		info.TimeZone = zones[0]
	}
	return info, nil
}

func (n *libNormalizer) parse(raw, region string) (*phonenumbers.PhoneNumber, bool) {
	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return nil, false
	}
	if !phonenumbers.IsValidNumber(num) {
		return nil, false
	}
	return num, true
}
