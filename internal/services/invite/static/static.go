// Package static embeds the public asset root served by the invitation
// service.
//
// The embedded .well-known app link files carry REPLACE_WITH_* markers instead
// of a team id and signing certificate. Deployments provide the real files
// through a PUBLIC_DIR copy of public/.
package static

import (
	"embed"
	"io/fs"
	"os"
	"strings"
)

//go:embed all:public
var embedded embed.FS

// PlaceholderMarker prefixes values that a deployment must supply.
const PlaceholderMarker = "REPLACE_WITH_"

// FS returns the public asset root. A non-empty dir overrides the embedded
// assets with files from disk.
func FS(dir string) (fs.FS, error) {
	if dir = strings.TrimSpace(dir); dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrInvalid}
		}
		return os.DirFS(dir), nil
	}
	return fs.Sub(embedded, "public")
}
