// Command nomweb is a verified light client for the chain's REST
// gateway.
package main

import (
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
