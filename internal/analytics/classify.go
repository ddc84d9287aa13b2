package analytics

import "strings"

// OSName classifies a user agent into one OS bucket. Checks are plain
// case-insensitive substring matches evaluated in a fixed order; the first
// match wins. Note "mac" is checked before "iphone", so iPhone agents that
// also mention Mac (as Safari's do) land in macOS.
func OSName(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "mac"):
		return "macOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "ios"), strings.Contains(ua, "iphone"):
		return "iOS"
	default:
		return "Other"
	}
}

// DeviceName classifies a user agent as mobile or desktop.
func DeviceName(userAgent string) string {
	ua := strings.ToLower(userAgent)

	if strings.Contains(ua, "mobile") ||
		strings.Contains(ua, "android") ||
		strings.Contains(ua, "iphone") {
		return "mobile"
	}

	return "desktop"
}
