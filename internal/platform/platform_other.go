//go:build !windows

package platform

import (
	"os"
	"runtime"
)

func Detect() Info {
	return Info{
		OS:       runtime.GOOS,
		Elevated: os.Geteuid() == 0,
	}
}
