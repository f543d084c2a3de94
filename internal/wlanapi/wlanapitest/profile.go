package wlanapitest

import (
	"fmt"
	"html"
	"strings"
)

// ProfileXML renders a WLANProfile document in the shape WlanGetProfile
// returns. An empty key omits the sharedKey element, as the service does for
// open networks and for callers that may not read the key.
func ProfileXML(name, auth, cipher, key string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?>` + "\n")
	b.WriteString(`<WLANProfile xmlns="http://www.microsoft.com/networking/WLAN/profile/v1">` + "\n")
	fmt.Fprintf(&b, "\t<name>%s</name>\n", html.EscapeString(name))
	b.WriteString("\t<SSIDConfig>\n\t\t<SSID>\n")
	fmt.Fprintf(&b, "\t\t\t<hex>%X</hex>\n", name)
	fmt.Fprintf(&b, "\t\t\t<name>%s</name>\n", html.EscapeString(name))
	b.WriteString("\t\t</SSID>\n\t</SSIDConfig>\n")
	b.WriteString("\t<connectionType>ESS</connectionType>\n")
	b.WriteString("\t<connectionMode>auto</connectionMode>\n")
	b.WriteString("\t<MSM>\n\t\t<security>\n")
	b.WriteString("\t\t\t<authEncryption>\n")
	fmt.Fprintf(&b, "\t\t\t\t<authentication>%s</authentication>\n", auth)
	fmt.Fprintf(&b, "\t\t\t\t<encryption>%s</encryption>\n", cipher)
	b.WriteString("\t\t\t\t<useOneX>false</useOneX>\n")
	b.WriteString("\t\t\t</authEncryption>\n")
	if key != "" {
		b.WriteString("\t\t\t<sharedKey>\n")
		b.WriteString("\t\t\t\t<keyType>passPhrase</keyType>\n")
		b.WriteString("\t\t\t\t<protected>false</protected>\n")
		fmt.Fprintf(&b, "\t\t\t\t<keyMaterial>%s</keyMaterial>\n", html.EscapeString(key))
		b.WriteString("\t\t\t</sharedKey>\n")
	}
	b.WriteString("\t\t</security>\n\t</MSM>\n")
	b.WriteString("</WLANProfile>\n")
	return b.String()
}
