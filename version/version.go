package version

import (
	"fmt"
	"strings"
	"sync"
)

// buildCharacters lists the characters allowed in appBuild.
const buildCharacters = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-"

const (
	appMajor uint = 0
	appMinor uint = 1
	appPatch uint = 0
)

// appBuild may be set at link time with
// -ldflags "-X github.com/spacechains/covchain/version.appBuild=foo".
var appBuild string

var (
	versionOnce sync.Once
	version     string
)

// Version returns the application version, with the build metadata appended
// when appBuild is valid.
func Version() string {
	versionOnce.Do(func() {
		version = formatVersion(appBuild)
	})
	return version
}

func formatVersion(build string) string {
	base := fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)
	if build == "" || strings.Trim(build, buildCharacters) != "" {
		return base
	}
	return base + "-" + build
}
