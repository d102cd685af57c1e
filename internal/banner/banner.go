// Package banner renders the CLI startup banner.
package banner

import "fmt"

const art = `     _                  __ _ _ _
  __| | ___   ___ _   _ / _(_) | |
 / _' |/ _ \ / __| | | | |_| | | |
| (_| | (_) | (__| |_| |  _| | | |
 \__,_|\___/ \___|\__,_|_| |_|_|_|
`

// Banner returns the startup banner with the version line.
func Banner(version string) string {
	return fmt.Sprintf("%s  document-to-form autofill mapper %s\n\n", art, version)
}
