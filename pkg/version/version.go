package version

// value is overridden at build time via -ldflags "-X dispenser/pkg/version.value=...".
var value = "dev"

// Version reports the build identifier embedded into the binary.
func Version() string {
	return value
}
