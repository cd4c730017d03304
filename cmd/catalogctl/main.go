// Command catalogctl administers the book catalog outside the HTTP API.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(defaultOpener).Execute(); err != nil {
		os.Exit(1)
	}
}
