// Package version provides the tlcompare tool version.
package version

// Version is the tlcompare tool version.
// Can be overridden at build time with:
//   go build -ldflags "-X github.com/jlighthall/tlcompare/pkg/version.Version=2.0.1"
var Version = "dev"
