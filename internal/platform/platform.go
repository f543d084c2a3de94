// Package platform describes the host the tool runs on.
package platform

// Info is detected once at startup and logged with the run.
type Info struct {
	OS      string
	Version string
	Build   string

	// Elevated reports membership in the local administrators group on
	// Windows, or an effective uid of 0 elsewhere. The WLAN service only
	// returns plaintext keys to elevated callers.
	Elevated bool
}

// elevated decides elevation from the two token checks. Membership of the
// enabled administrators group decides when it could be read; otherwise the
// token's elevation flag does.
func elevated(member bool, memberErr error, tokenElevated bool) bool {
	if memberErr != nil {
		return tokenElevated
	}
	return member
}
