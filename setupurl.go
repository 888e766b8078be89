package rtspingest

import (
	"net/url"
	"strings"
)

// buildSetupURL implements base spec §4.1.2's SETUP-URL construction
// rules exactly: given a control attribute "track" and an optional
// Content-Base "base", it derives the absolute URL to SETUP.
func buildSetupURL(track string, base string, rtspURL string) string {
	switch {
	case strings.HasPrefix(track, "rtsp://"):
		return track

	case strings.HasPrefix(track, "/"):
		b := base
		if b == "" {
			b = schemeAndHost(rtspURL)
		}
		return strings.TrimSuffix(b, "/") + track

	case track == "*":
		return rtspURL

	default:
		b := base
		if b == "" {
			b = rtspURL
		}
		return strings.TrimSuffix(b, "/") + "/" + track
	}
}

// schemeAndHost returns "scheme://host:port" for rtspURL, falling back to
// rtspURL unchanged if it cannot be parsed.
func schemeAndHost(rtspURL string) string {
	u, err := url.Parse(rtspURL)
	if err != nil {
		return rtspURL
	}
	return u.Scheme + "://" + u.Host
}
