// Package imagestore holds the blob stores for uploaded item images.
package imagestore

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// objectName derives a collision-free, path-safe name from the uploaded
// filename. Names with nothing usable left after sanitising get the bare
// UUID.
func objectName(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		return uuid.NewString()
	}
	return uuid.NewString() + "-" + base
}

// validObjectName reports whether name could have come from objectName.
func validObjectName(name string) bool {
	return name != "" && !strings.HasPrefix(name, ".") && !unsafeChars.MatchString(name)
}
