// Package buildinfo tracks the instrument-file format version this build
// writes and reads, using blang/semver the same way the ambient stack's
// noisetorch reference pulls in an adjacent small dependency for version
// comparisons rather than hand-rolling "v1.2.3" parsing.
package buildinfo

import (
	"fmt"

	"github.com/blang/semver/v4"
)

// FormatVersion is the instrument-description XML schema version this
// build writes (internal/xmlio's Save) and the newest version it accepts
// on Load.
var FormatVersion = semver.MustParse("1.0.0")

// CheckCompatible reports whether a loaded file's declared format version
// can be read by this build: same major version, and not newer than
// FormatVersion (a file from a future major/minor release may use fields
// this build does not understand).
func CheckCompatible(fileVersion string) error {
	v, err := semver.Parse(fileVersion)
	if err != nil {
		return fmt.Errorf("buildinfo: parse file version %q: %w", fileVersion, err)
	}
	if v.Major != FormatVersion.Major {
		return fmt.Errorf("buildinfo: file format major version %d incompatible with %d", v.Major, FormatVersion.Major)
	}
	if v.GT(FormatVersion) {
		return fmt.Errorf("buildinfo: file format version %s newer than supported %s", v, FormatVersion)
	}
	return nil
}
