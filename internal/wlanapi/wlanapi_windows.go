//go:build windows

package wlanapi

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// --- DLL & Procedure Handles

var (
	wlanapi = windows.NewLazySystemDLL("wlanapi.dll")

	procWlanOpenHandle     = wlanapi.NewProc("WlanOpenHandle")
	procWlanCloseHandle    = wlanapi.NewProc("WlanCloseHandle")
	procWlanEnumInterfaces = wlanapi.NewProc("WlanEnumInterfaces")
	procWlanGetProfileList = wlanapi.NewProc("WlanGetProfileList")
	procWlanGetProfile     = wlanapi.NewProc("WlanGetProfile")
	procWlanFreeMemory     = wlanapi.NewProc("WlanFreeMemory")
)

// GUID must stay layout-compatible with windows.GUID.
var _ = [1]struct{}{}[unsafe.Sizeof(GUID{})-unsafe.Sizeof(windows.GUID{})]

type systemService struct{}

// NewService returns the Service backed by wlanapi.dll.
func NewService() Service {
	return systemService{}
}

func (systemService) OpenHandle(clientVersion uint32) (uintptr, uint32, error) {
	// Server SKUs ship without the WLAN feature unless it is installed.
	if err := wlanapi.Load(); err != nil {
		return 0, 0, err
	}

	var handle windows.Handle
	var negotiated uint32

	ret, _, _ := procWlanOpenHandle.Call(
		uintptr(clientVersion),               // [in] DWORD dwClientVersion
		0,                                    // [in] PVOID pReserved
		uintptr(unsafe.Pointer(&negotiated)), // [out] PDWORD pdwNegotiatedVersion
		uintptr(unsafe.Pointer(&handle)),     // [out] PHANDLE phClientHandle
	)
	if ret != 0 {
		return 0, 0, os.NewSyscallError("WlanOpenHandle", windows.Errno(ret))
	}
	return uintptr(handle), negotiated, nil
}

func (systemService) CloseHandle(handle uintptr) error {
	ret, _, _ := procWlanCloseHandle.Call(handle, 0)
	if ret != 0 {
		return os.NewSyscallError("WlanCloseHandle", windows.Errno(ret))
	}
	return nil
}

func (systemService) EnumInterfaces(handle uintptr) (unsafe.Pointer, error) {
	var list unsafe.Pointer
	ret, _, _ := procWlanEnumInterfaces.Call(
		handle,                         // [in] HANDLE hClientHandle
		0,                              // [in] PVOID pReserved
		uintptr(unsafe.Pointer(&list)), // [out] PWLAN_INTERFACE_INFO_LIST *ppInterfaceList
	)
	if ret != 0 {
		return nil, os.NewSyscallError("WlanEnumInterfaces", windows.Errno(ret))
	}
	return list, nil
}

func (systemService) GetProfileList(handle uintptr, iface *GUID) (unsafe.Pointer, error) {
	var list unsafe.Pointer
	ret, _, _ := procWlanGetProfileList.Call(
		handle,                         // [in] HANDLE hClientHandle
		uintptr(unsafe.Pointer(iface)), // [in] const GUID *pInterfaceGuid
		0,                              // [in] PVOID pReserved
		uintptr(unsafe.Pointer(&list)), // [out] PWLAN_PROFILE_INFO_LIST *ppProfileList
	)
	if ret != 0 {
		return nil, os.NewSyscallError("WlanGetProfileList", windows.Errno(ret))
	}
	return list, nil
}

func (systemService) GetProfile(handle uintptr, iface *GUID, name string, flags uint32) (unsafe.Pointer, error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, err
	}

	var xml unsafe.Pointer
	var granted uint32

	ret, _, _ := procWlanGetProfile.Call(
		handle,                            // [in] HANDLE hClientHandle
		uintptr(unsafe.Pointer(iface)),    // [in] const GUID *pInterfaceGuid
		uintptr(unsafe.Pointer(namePtr)),  // [in] LPCWSTR strProfileName
		0,                                 // [in] PVOID pReserved
		uintptr(unsafe.Pointer(&xml)),     // [out] LPWSTR *pstrProfileXml
		uintptr(unsafe.Pointer(&flags)),   // [in, out, optional] DWORD *pdwFlags
		uintptr(unsafe.Pointer(&granted)), // [out, optional] DWORD *pdwGrantedAccess
	)
	if ret != 0 {
		return nil, os.NewSyscallError("WlanGetProfile", windows.Errno(ret))
	}
	return xml, nil
}

func (systemService) FreeMemory(p unsafe.Pointer) {
	procWlanFreeMemory.Call(uintptr(p))
}
