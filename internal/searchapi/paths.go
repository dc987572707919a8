package searchapi

import (
	"path/filepath"
	"strings"
)

// ResolveLocalPath joins a service-relative, slash separated file path onto the
// local assets root using the platform separator. A single leading slash is
// dropped first. It returns "" when either input is empty.
func ResolveLocalPath(root string, filePath string) string {
	if root == "" || filePath == "" {
		return ""
	}

	normalized := strings.TrimPrefix(filePath, "/")
	parts := strings.Split(normalized, "/")
	return filepath.Join(append([]string{root}, parts...)...)
}
