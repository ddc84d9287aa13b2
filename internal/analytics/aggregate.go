package analytics

import "time"

const dateLayout = "2006-01-02"

// windowStart returns the inclusive lower bound of the trailing-7-day
// window as an ISO date. Comparison against it is string-lexicographic,
// which is order-preserving for YYYY-MM-DD. There is no upper bound, so
// future-dated events fall inside the window.
func windowStart(now time.Time) string {
	return now.AddDate(0, 0, -7).Format(dateLayout)
}

// dateSeries accumulates clicks per date, keeping dates in the order they
// were first encountered.
type dateSeries struct {
	order  []string
	clicks map[string]int
}

func newDateSeries() *dateSeries {
	return &dateSeries{clicks: make(map[string]int)}
}

func (s *dateSeries) add(date string, clicks int) {
	if _, ok := s.clicks[date]; !ok {
		s.order = append(s.order, date)
	}

	s.clicks[date] += clicks
}

func (s *dateSeries) entries() []DateClicks {
	entries := make([]DateClicks, 0, len(s.order))
	for _, date := range s.order {
		entries = append(entries, DateClicks{Date: date, ClickCount: s.clicks[date]})
	}

	return entries
}

// bucketSet accumulates clicks and representative IPs per classification
// bucket, keeping buckets in first-encounter order.
type bucketSet struct {
	order   []string
	buckets map[string]*bucket
}

type bucket struct {
	clicks int
	ips    map[string]struct{}
}

func newBucketSet() *bucketSet {
	return &bucketSet{buckets: make(map[string]*bucket)}
}

func (s *bucketSet) add(name string, clicks int, ip string) {
	b, ok := s.buckets[name]
	if !ok {
		b = &bucket{ips: make(map[string]struct{})}
		s.buckets[name] = b
		s.order = append(s.order, name)
	}

	b.clicks += clicks
	b.ips[ip] = struct{}{}
}

// BuildAliasReport derives the click statistics for one alias from its
// pre-grouped event tuples. Unique-user counts are taken over each group's
// single representative IP, not the true per-event distinct set, so an IP
// hidden behind another representative within a group is not counted.
func BuildAliasReport(groups []EventGroup, now time.Time) *Report {
	report := &Report{
		ClicksByDate: []DateClicks{},
		OSType:       []OSStats{},
		DeviceType:   []DeviceStats{},
	}

	cutoff := windowStart(now)
	ips := make(map[string]struct{})
	dates := newDateSeries()
	osBuckets := newBucketSet()
	deviceBuckets := newBucketSet()

	for _, g := range groups {
		report.TotalClicks += g.TotalClicks
		ips[g.IPAddress] = struct{}{}

		if g.ClickDate >= cutoff {
			dates.add(g.ClickDate, g.TotalClicks)
		}

		osBuckets.add(OSName(g.UserAgent), g.TotalClicks, g.IPAddress)
		deviceBuckets.add(DeviceName(g.UserAgent), g.TotalClicks, g.IPAddress)
	}

	report.UniqueUsers = len(ips)
	report.ClicksByDate = dates.entries()

	for _, name := range osBuckets.order {
		b := osBuckets.buckets[name]
		report.OSType = append(report.OSType, OSStats{
			OSName:       name,
			UniqueClicks: b.clicks,
			UniqueUsers:  len(b.ips),
		})
	}

	for _, name := range deviceBuckets.order {
		b := deviceBuckets.buckets[name]
		report.DeviceType = append(report.DeviceType, DeviceStats{
			DeviceName:   name,
			UniqueClicks: b.clicks,
			UniqueUsers:  len(b.ips),
		})
	}

	return report
}
