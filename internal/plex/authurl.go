package plex

import (
	"net/url"
	"strings"
)

// DefaultAppURL is the host of the interactive approval page.
const DefaultAppURL = "https://app.plex.tv"

// AuthURL returns the browser URL where the user approves pin. The
// parameters travel in the fragment, so they never reach a server log.
func AuthURL(appURL string, id Identity, pin Pin) string {
	if appURL == "" {
		appURL = DefaultAppURL
	}

	params := []string{
		"clientID=" + escapeFragment(id.BundleID),
		"code=" + escapeFragment(pin.Code),
		"context[device][product]=" + escapeFragment(id.Product),
	}

	return strings.TrimRight(appURL, "/") + "/auth#" + strings.Join(params, "&")
}

// escapeFragment query-escapes s using %20 for spaces; the approval page
// does not decode '+'.
func escapeFragment(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
