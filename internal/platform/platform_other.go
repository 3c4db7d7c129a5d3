//go:build !windows

package platform

import "runtime"

func Detect() Info {
	return Info{ProductName: runtime.GOOS}
}
