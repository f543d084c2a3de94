//go:build windows

package adapter

import (
	"fmt"

	"github.com/yusufpapurcu/wmi"
)

// Load queries WMI for every adapter with a connection name.
func Load() (Table, error) {
	var dst []Win32_NetworkAdapter

	q := wmi.CreateQuery(&dst, "WHERE GUID IS NOT NULL AND NetConnectionID IS NOT NULL")
	if err := wmi.Query(q, &dst); err != nil {
		return Table{}, fmt.Errorf("querying Win32_NetworkAdapter: %w", err)
	}

	return newTable(dst), nil
}
