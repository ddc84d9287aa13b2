package analytics

import "time"

// BuildTopicReport combines the pre-grouped event tuples of every alias
// under one topic into a single report. Tuples here are grouped by (alias,
// date) only, without user agent. An alias that belongs to the topic but has
// no events contributes no entry to URLs at all; callers that want "all
// topic URLs" semantics do not get them here.
func BuildTopicReport(groups []EventGroup, now time.Time) *TopicReport {
	report := &TopicReport{
		ClicksByDate: []DateClicks{},
		URLs:         []AliasClicks{},
	}

	cutoff := windowStart(now)
	ips := make(map[string]struct{})
	dates := newDateSeries()
	perAlias := newBucketSet()

	for _, g := range groups {
		report.TotalClicks += g.TotalClicks
		ips[g.IPAddress] = struct{}{}

		if g.ClickDate >= cutoff {
			dates.add(g.ClickDate, g.TotalClicks)
		}

		perAlias.add(g.Alias, g.TotalClicks, g.IPAddress)
	}

	report.UniqueUsers = len(ips)
	report.ClicksByDate = dates.entries()

	for _, alias := range perAlias.order {
		b := perAlias.buckets[alias]
		report.URLs = append(report.URLs, AliasClicks{
			ShortURL:    alias,
			TotalClicks: b.clicks,
			UniqueUsers: len(b.ips),
		})
	}

	return report
}
