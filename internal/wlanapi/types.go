// Package wlanapi wraps the WLAN AutoConfig service: session lifetime,
// interface enumeration, profile listing and profile retrieval.
//
// The service hands back variable-length arrays in memory it allocated. Every
// such pointer is wrapped in a Buffer owned by the method that requested it and
// released before the method returns; records are copied out first.
package wlanapi

import (
	"encoding/binary"

	"github.com/google/uuid"
)

const (
	// Client version passed to WlanOpenHandle.

	ClientVersion2 = 2 // Windows Vista+

	// WlanGetProfile flag (wlanapi.h).

	ProfileGetPlaintextKey = 0x00000004

	// Profile info flags reported by WlanGetProfileList.

	ProfileGroupPolicy = 0x00000001
	ProfileUser        = 0x00000002

	// Fixed-width string fields are WLAN_MAX_NAME_LENGTH wide chars.
	maxNameLength = 256
)

// MaxListItems bounds the item count trusted from a list header.
const MaxListItems = 4096

// GUID mirrors the Windows GUID layout.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// UUID converts g into its canonical RFC 4122 byte order.
func (g GUID) UUID() uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], g.Data1)
	binary.BigEndian.PutUint16(u[4:6], g.Data2)
	binary.BigEndian.PutUint16(u[6:8], g.Data3)
	copy(u[8:], g.Data4[:])
	return u
}

func (g GUID) String() string {
	return g.UUID().String()
}

// GUIDFromUUID is the inverse of GUID.UUID.
func GUIDFromUUID(u uuid.UUID) GUID {
	g := GUID{
		Data1: binary.BigEndian.Uint32(u[0:4]),
		Data2: binary.BigEndian.Uint16(u[4:6]),
		Data3: binary.BigEndian.Uint16(u[6:8]),
	}
	copy(g.Data4[:], u[8:])
	return g
}

// InterfaceState is WLAN_INTERFACE_STATE.
type InterfaceState uint32

const (
	InterfaceStateNotReady InterfaceState = iota
	InterfaceStateConnected
	InterfaceStateAdHocNetworkFormed
	InterfaceStateDisconnecting
	InterfaceStateDisconnected
	InterfaceStateAssociating
	InterfaceStateDiscovering
	InterfaceStateAuthenticating
)

func (s InterfaceState) String() string {
	switch s {
	case InterfaceStateNotReady:
		return "not ready"
	case InterfaceStateConnected:
		return "connected"
	case InterfaceStateAdHocNetworkFormed:
		return "ad hoc"
	case InterfaceStateDisconnecting:
		return "disconnecting"
	case InterfaceStateDisconnected:
		return "disconnected"
	case InterfaceStateAssociating:
		return "associating"
	case InterfaceStateDiscovering:
		return "discovering"
	case InterfaceStateAuthenticating:
		return "authenticating"
	default:
		return "unknown"
	}
}

// --- Service memory layouts ---

// InterfaceInfoList is WLAN_INTERFACE_INFO_LIST. InterfaceInfo is declared
// with one element; NumberOfItems entries follow contiguously.
type InterfaceInfoList struct {
	NumberOfItems uint32
	Index         uint32
	InterfaceInfo [1]InterfaceInfo
}

// InterfaceInfo is WLAN_INTERFACE_INFO.
type InterfaceInfo struct {
	InterfaceGUID        GUID
	InterfaceDescription [maxNameLength]uint16
	State                uint32
}

// ProfileInfoList is WLAN_PROFILE_INFO_LIST.
type ProfileInfoList struct {
	NumberOfItems uint32
	Index         uint32
	ProfileInfo   [1]ProfileInfo
}

// ProfileInfo is WLAN_PROFILE_INFO.
type ProfileInfo struct {
	ProfileName [maxNameLength]uint16
	Flags       uint32
}

// --- Copied-out records ---

// Interface is a wireless adapter known to the service.
type Interface struct {
	GUID        GUID
	Description string
	State       InterfaceState
}

// Profile is a saved network profile on one interface.
type Profile struct {
	Name  string
	Flags uint32
}

// GroupPolicy reports whether the profile was pushed by group policy.
func (p Profile) GroupPolicy() bool {
	return p.Flags&ProfileGroupPolicy != 0
}

// PerUser reports whether the profile belongs to a single user.
func (p Profile) PerUser() bool {
	return p.Flags&ProfileUser != 0
}
