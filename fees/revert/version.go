package revert

import "runtime/debug"

const modulePath = "github.com/smartcontractkit/chainlink-rollup-fees"

// libraryVersion resolves this module's version from the build info baked
// into the running binary, so the rendered error identifies which release
// produced it. Binaries built without module info report "devel".
func libraryVersion() string {
	version := ""
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Path == modulePath {
			version = info.Main.Version
		} else {
			for _, dep := range info.Deps {
				if dep.Path == modulePath {
					version = dep.Version
					break
				}
			}
		}
	}
	if version == "" || version == "(devel)" {
		version = "devel"
	}

	return "chainlink-rollup-fees@" + version
}
