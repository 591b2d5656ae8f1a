// aideon-tools converts linked-data datasets between JSON-LD, Excel
// workbooks and RDF.
package main

import (
	"os"

	"github.com/aideon-labs/aideon-tools/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
