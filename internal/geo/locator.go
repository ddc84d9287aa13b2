// Package geo resolves client IP addresses to a best-effort city-level
// location for click analytics.
package geo

import "context"

// Location is a city-level position derived from an IP address.
type Location struct {
	City    string
	Region  string
	Country string
}

// Unknown is the sentinel location used when a lookup fails or the address
// is unroutable.
var Unknown = Location{City: "Unknown", Region: "Unknown", Country: "Unknown"}

// String renders the location in the "city, region, country" form stored on
// click events.
func (l Location) String() string {
	return l.City + ", " + l.Region + ", " + l.Country
}

// Locator resolves an IP address to a location.
type Locator interface {
	Locate(ctx context.Context, ip string) (Location, error)
}

// Noop always reports Unknown. Used when no GeoIP database is configured.
type Noop struct{}

// Locate implements Locator.
func (Noop) Locate(context.Context, string) (Location, error) {
	return Unknown, nil
}
