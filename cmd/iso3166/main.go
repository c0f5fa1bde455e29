// Command iso3166 queries the ISO 3166 reference datasets from the command line.
//
// Usage:
//
//	iso3166 datasets
//	iso3166 fields countries [--indexable]
//	iso3166 query countries --select alpha2,name --offset 0 --count 10 --lang it
//	iso3166 get countries IT --format yaml
//
// Settings are read from an optional config file (--config) and ISO3166_
// environment variables; flags override both.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
