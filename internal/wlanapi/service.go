package wlanapi

import "unsafe"

// Service is the set of configuration service calls the session needs.
//
// Pointers returned by EnumInterfaces, GetProfileList and GetProfile belong to
// the service and must be handed back to FreeMemory exactly once. The list
// calls return a pointer to an InterfaceInfoList or ProfileInfoList; GetProfile
// returns a NUL-terminated UTF-16 string.
type Service interface {
	OpenHandle(clientVersion uint32) (handle uintptr, negotiated uint32, err error)
	CloseHandle(handle uintptr) error
	EnumInterfaces(handle uintptr) (unsafe.Pointer, error)
	GetProfileList(handle uintptr, iface *GUID) (unsafe.Pointer, error)
	GetProfile(handle uintptr, iface *GUID, name string, flags uint32) (unsafe.Pointer, error)
	FreeMemory(p unsafe.Pointer)
}
