package models

// Session is the relay state bridging a phone capture flow and a browser tab.
// It is keyed by an opaque id chosen by the browser.
type Session struct {
	MobileConnected bool           `json:"mobileConnected"`
	WebConnected    bool           `json:"webConnected"`
	PendingCommand  *string        `json:"pendingCommand"`
	Images          []SessionImage `json:"images"`
}

// SessionImage is one relayed label photo, immutable once appended.
type SessionImage struct {
	ID         string `json:"id"`
	DataURL    string `json:"dataUrl"`
	Product    string `json:"product"`
	ExpiryDate string `json:"expiryDate"`
}

// SessionUpdate is a partial update to a session. Nil fields leave the
// corresponding session attribute untouched; an empty Command clears the
// pending command. Image, if non-empty, is appended as a new SessionImage
// rather than overwriting anything.
type SessionUpdate struct {
	MobileConnected *bool   `json:"mobileConnected"`
	WebConnected    *bool   `json:"webConnected"`
	Command         *string `json:"command"`
	Image           string  `json:"image"`
}

// AnalyzeResult is the extraction output for one label photo.
type AnalyzeResult struct {
	Product    string `json:"product"`
	ExpiryDate string `json:"expiryDate"`
}
