//go:build windows

package platform

import (
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

func Detect() Info {
	info := Info{ProductName: "windows"}

	k, err := registry.OpenKey(registry.LOCAL_MACHINE,
		`SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err == nil {
		defer k.Close()

		if val, _, err := k.GetStringValue("ProductName"); err == nil {
			info.ProductName = val
		}
		if val, _, err := k.GetStringValue("DisplayVersion"); err == nil {
			info.DisplayVersion = val
		}
		info.Build, _, _ = k.GetStringValue("CurrentBuildNumber")
	}

	ok, err := isWindowsAdmin()
	info.IsAdmin = err == nil && ok

	return info
}

func isWindowsAdmin() (bool, error) {
	var token windows.Token
	if err := windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_QUERY, &token); err != nil {
		return false, err
	}
	defer token.Close()

	adminSID, err := windows.CreateWellKnownSid(windows.WinBuiltinAdministratorsSid)
	if err != nil {
		return false, err
	}

	// Token.IsMember needs an impersonation token; the elevated check is what matters here
	if token.IsElevated() {
		return true, nil
	}

	return token.IsMember(adminSID)
}
