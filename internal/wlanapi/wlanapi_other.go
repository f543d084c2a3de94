//go:build !windows

package wlanapi

import (
	"errors"
	"unsafe"
)

var errUnsupported = errors.New("wlanapi: requires windows")

type systemService struct{}

// NewService returns a Service that fails to open on this platform.
func NewService() Service {
	return systemService{}
}

func (systemService) OpenHandle(uint32) (uintptr, uint32, error) {
	return 0, 0, errUnsupported
}

func (systemService) CloseHandle(uintptr) error { return errUnsupported }

func (systemService) EnumInterfaces(uintptr) (unsafe.Pointer, error) {
	return nil, errUnsupported
}

func (systemService) GetProfileList(uintptr, *GUID) (unsafe.Pointer, error) {
	return nil, errUnsupported
}

func (systemService) GetProfile(uintptr, *GUID, string, uint32) (unsafe.Pointer, error) {
	return nil, errUnsupported
}

func (systemService) FreeMemory(unsafe.Pointer) {}
