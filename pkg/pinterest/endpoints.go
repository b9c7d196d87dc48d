package pinterest

import (
	"net/url"
	"strings"
)

const (
	// Domain is the registrable domain pin URLs must belong to
	Domain = "pinterest.com"

	// PinPathSegment must appear in the path of a pin page URL
	PinPathSegment = "/pin/"
)

// IsPinURL reports whether raw looks like a Pinterest pin page: an http(s)
// URL on pinterest.com (or a subdomain such as www.) whose path contains /pin/.
func IsPinURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if host != Domain && !strings.HasSuffix(host, "."+Domain) {
		return false
	}

	return strings.Contains(u.Path, PinPathSegment)
}
