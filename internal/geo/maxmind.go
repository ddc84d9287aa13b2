package geo

import (
	"context"
	"fmt"
	"net"

	"github.com/oschwald/maxminddb-golang"
)

// MaxMind resolves IPs against a local MaxMind GeoIP2/GeoLite2 City database.
type MaxMind struct {
	reader *maxminddb.Reader
}

// OpenMaxMind opens the database at the given path.
func OpenMaxMind(path string) (*MaxMind, error) {
	reader, err := maxminddb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database: %w", err)
	}

	return &MaxMind{reader: reader}, nil
}

type cityRecord struct {
	City struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"city"`
	Subdivisions []struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"subdivisions"`
	Country struct {
		Names map[string]string `maxminddb:"names"`
	} `maxminddb:"country"`
}

// Locate implements Locator. Fields missing from the database record keep
// the Unknown sentinel value.
func (m *MaxMind) Locate(_ context.Context, ip string) (Location, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return Unknown, fmt.Errorf("invalid ip address %q", ip)
	}

	var record cityRecord
	if err := m.reader.Lookup(parsed, &record); err != nil {
		return Unknown, err
	}

	location := Unknown

	if name := record.City.Names["en"]; name != "" {
		location.City = name
	}

	if len(record.Subdivisions) > 0 {
		if name := record.Subdivisions[0].Names["en"]; name != "" {
			location.Region = name
		}
	}

	if name := record.Country.Names["en"]; name != "" {
		location.Country = name
	}

	return location, nil
}

// Shutdown closes the underlying database reader.
func (m *MaxMind) Shutdown() error {
	return m.reader.Close()
}
