// Command guillocut runs the guillotine rectangle-packing search over a
// CSV or XLSX instance and writes a solution certificate.
package main

import (
	"os"

	"github.com/piwi3910/guillocut/cmd/guillocut/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
