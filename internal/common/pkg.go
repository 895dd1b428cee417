package common

import (
	"path"
	"regexp"
	"strings"
)

// UnknownStr is the String form of unrecognized enum values.
const UnknownStr = "unknown"

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// PkgAlias returns the default package name for an import path: the last
// path element without a major version element ("/v2") or gopkg.in style
// suffix (".v3"). Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if majorVersion.MatchString(base) {
		if dir := path.Dir(pkgPath); dir != "." {
			base = path.Base(dir)
		}
	}

	if i := strings.Index(base, ".v"); i > 0 && majorVersion.MatchString(base[i+1:]) {
		base = base[:i]
	}

	return strings.ReplaceAll(base, "-", "_")
}
