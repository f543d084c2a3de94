// Package credential classifies a profile's authentication scheme and pulls
// the pre-shared key out of its document when the scheme has one.
package credential

import (
	"strings"

	"github.com/nhdewitt/wlancreds/internal/profile"
)

// AuthOpen is the authentication value of an unsecured network.
const AuthOpen = "open"

// Element paths inside a WLANProfile document.
var (
	AuthPath      = profile.Path("MSM/security/authEncryption/authentication")
	CipherPath    = profile.Path("MSM/security/authEncryption/encryption")
	KeyPath       = profile.Path("MSM/security/sharedKey/keyMaterial")
	ProtectedPath = profile.Path("MSM/security/sharedKey/protected")
)

// sharedKeySchemes keep their secret under sharedKey/keyMaterial.
var sharedKeySchemes = []string{
	"WPA2",
	"WPA2PSK",
	"WPAPSK",
	"WPA3SAE",
	"shared",
}

// Result is the recovered credential of one profile. Key is nil when the
// scheme has no shared key or the key could not be read.
type Result struct {
	Interface string  `json:"interface,omitempty" yaml:"interface,omitempty"`
	SSID      string  `json:"ssid" yaml:"ssid"`
	AuthType  string  `json:"auth_type" yaml:"auth_type"`
	Cipher    string  `json:"cipher,omitempty" yaml:"cipher,omitempty"`
	Key       *string `json:"key" yaml:"key"`
}

// HasKey reports whether a key was recovered.
func (r Result) HasKey() bool {
	return r.Key != nil
}

// IsSharedKey reports whether auth is a pre-shared-key scheme.
func IsSharedKey(auth string) bool {
	for _, s := range sharedKeySchemes {
		if strings.EqualFold(auth, s) {
			return true
		}
	}
	return false
}

// Classify builds the result for ssid given its authentication type.
//
// Open networks never carry a key. Shared-key schemes look up KeyPath in
// doc; a missing key is a partial result, not a failure. Any other scheme is
// passed through unchanged without a key.
func Classify(ssid, authType string, doc *profile.Node) Result {
	r := Result{SSID: ssid, AuthType: authType}

	// AuthOpen is not a shared-key scheme.
	if !IsSharedKey(authType) {
		return r
	}

	key, ok := doc.Resolve(KeyPath...)
	if !ok {
		return r
	}
	// Without read rights the service hands back the DPAPI blob instead.
	if protected, _ := doc.Resolve(ProtectedPath...); strings.EqualFold(strings.TrimSpace(protected), "true") {
		return r
	}
	r.Key = &key
	return r
}

// FromDocument reads the authentication and cipher fields of doc and
// classifies it.
func FromDocument(ssid string, doc *profile.Node) Result {
	auth, _ := doc.Resolve(AuthPath...)
	cipher, _ := doc.Resolve(CipherPath...)

	r := Classify(ssid, strings.TrimSpace(auth), doc)
	r.Cipher = strings.TrimSpace(cipher)
	return r
}
