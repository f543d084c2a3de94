//go:build windows

package platform

import (
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

func Detect() Info {
	info := Info{OS: "windows"}

	k, err := registry.OpenKey(registry.LOCAL_MACHINE,
		`SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err == nil {
		defer k.Close()

		if val, _, err := k.GetStringValue("ProductName"); err == nil {
			info.OS = val
		}
		if val, _, err := k.GetStringValue("DisplayVersion"); err == nil {
			info.Version = val
		}
		info.Build, _, _ = k.GetStringValue("CurrentBuildNumber")
	}

	info.Elevated = isWindowsAdmin()

	return info
}

func isWindowsAdmin() bool {
	adminSID, err := windows.CreateWellKnownSid(windows.WinBuiltinAdministratorsSid)
	if err != nil {
		return elevated(false, err, windows.GetCurrentProcessToken().IsElevated())
	}

	// Token 0 lets CheckTokenMembership pick the thread's impersonation token
	// or a duplicate of the process token; a primary token is rejected.
	member, err := windows.Token(0).IsMember(adminSID)
	return elevated(member, err, windows.GetCurrentProcessToken().IsElevated())
}
