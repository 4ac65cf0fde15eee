//go:build windows
// +build windows

package platform

import "path/filepath"

// Socket returns the socket path.
func Socket(sock string) string {
	return `\\.\pipe\playerview-` + filepath.Base(sock)
}
