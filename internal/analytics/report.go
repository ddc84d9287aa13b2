package analytics

// DateClicks is one entry in a clicks-by-date series.
type DateClicks struct {
	Date       string `json:"date"`
	ClickCount int    `json:"clickCount"`
}

// OSStats is the click breakdown for one operating system bucket.
type OSStats struct {
	OSName       string `json:"osName"`
	UniqueClicks int    `json:"uniqueClicks"`
	UniqueUsers  int    `json:"uniqueUsers"`
}

// DeviceStats is the click breakdown for one device class bucket.
type DeviceStats struct {
	DeviceName   string `json:"deviceName"`
	UniqueClicks int    `json:"uniqueClicks"`
	UniqueUsers  int    `json:"uniqueUsers"`
}

// Report is the derived click statistics for a single alias. It is computed
// fresh on every query and never persisted.
type Report struct {
	TotalClicks  int           `json:"totalClicks"`
	UniqueUsers  int           `json:"uniqueUsers"`
	ClicksByDate []DateClicks  `json:"clicksByDate"`
	OSType       []OSStats     `json:"osType"`
	DeviceType   []DeviceStats `json:"deviceType"`
}

// AliasClicks is the per-alias summary inside a topic report.
type AliasClicks struct {
	ShortURL    string `json:"shortUrl"`
	TotalClicks int    `json:"totalClicks"`
	UniqueUsers int    `json:"uniqueUsers"`
}

// TopicReport is the combined click statistics across every alias registered
// under one topic. URLs lists only aliases that contributed at least one
// event tuple.
type TopicReport struct {
	TotalClicks  int           `json:"totalClicks"`
	UniqueUsers  int           `json:"uniqueUsers"`
	ClicksByDate []DateClicks  `json:"clicksByDate"`
	URLs         []AliasClicks `json:"urls"`
}
