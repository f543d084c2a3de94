//go:build !windows

package adapter

// Load returns an empty table; adapter names come from WMI on Windows only.
func Load() (Table, error) {
	return Table{}, nil
}
