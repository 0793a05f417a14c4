package plex

// Pin is a short-lived id/code pair issued by POST /api/v2/pins. The code
// is shown to the account service in the browser; the id is used to poll.
type Pin struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
}

// pinResponse is returned from POST /api/v2/pins.
type pinResponse struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
}

// Identity holds the application values the account service requires on
// every request.
type Identity struct {
	// ClientIdentifier uniquely identifies this installation.
	ClientIdentifier string
	// Product is the human readable application name shown on the
	// approval page.
	Product string
	// BundleID is passed as clientID in the browser URL.
	BundleID string
}
