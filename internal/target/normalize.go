package target

import (
	"net/url"
	"path/filepath"
)

// Stdin is the target naming standard input.
const Stdin = "-"

// Normalize processes a given input target and converts it into a standard
// form.
//
// Targets may be any valid URI or file path. File paths and file URIs are
// converted to an absolute form. All non-file URIs are left as-is with the
// expectation that they will be handled by some other implementation. The
// stdin target "-" is returned unchanged.
func Normalize(target string) string {
	if target == Stdin {
		return target
	}
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "" && u.Scheme != "file") {
		return target
	}
	if u.Scheme == "file" {
		target = u.Path
	}
	if !filepath.IsAbs(target) {
		abs, err := filepath.Abs(target)
		if err != nil {
			return filepath.Join("/", target)
		}
		return abs
	}
	return target
}
