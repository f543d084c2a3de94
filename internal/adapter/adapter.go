// Package adapter maps WLAN interface GUIDs to the connection name and MAC
// address the rest of the system shows for the same adapter.
package adapter

import (
	"strings"

	"github.com/google/uuid"
)

// Info describes one network adapter.
type Info struct {
	Name string // connection name, e.g. "Wi-Fi"
	MAC  string
}

// Enricher looks up adapter details by interface GUID.
type Enricher interface {
	Lookup(id uuid.UUID) (Info, bool)
}

// Table is an Enricher backed by a snapshot taken at Load time.
type Table map[uuid.UUID]Info

func (t Table) Lookup(id uuid.UUID) (Info, bool) {
	info, ok := t[id]
	return info, ok
}

// Win32_NetworkAdapter maps to the WMI class.
// Only the properties loaded by the query are declared.
type Win32_NetworkAdapter struct {
	GUID            string
	NetConnectionID string
	MACAddress      string
}

// newTable indexes rows by GUID; rows whose GUID does not parse are dropped.
func newTable(rows []Win32_NetworkAdapter) Table {
	t := make(Table, len(rows))
	for _, r := range rows {
		id, err := uuid.Parse(strings.TrimSpace(r.GUID))
		if err != nil {
			continue
		}
		t[id] = Info{
			Name: strings.TrimSpace(r.NetConnectionID),
			MAC:  strings.ToLower(r.MACAddress),
		}
	}
	return t
}
