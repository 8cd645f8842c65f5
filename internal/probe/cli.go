package probe

import "os"

// ShowHelp prints probe usage.
func ShowHelp() {
	os.Stdout.WriteString(`vendorboard smoke probe

Runs an end-to-end check against a live instance: health, stats, the
formatted dashboard grids, one symbol's intraday series and a manual
refresh.

Usage:
  probe [flags]

Flags:
  -url string        Base URL of the service (default "` + DefaultBaseURL + `")
  -timeout duration  HTTP request timeout (default 10s)
  -verbose           Log every passing check
  -help              Show this help
`)
}
