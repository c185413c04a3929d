// File: jitflags/cmd/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"jitflags"
)

// Prints the effective JIT flag values after applying TF_XLA_FLAGS.
// With a file argument, also dumps them in the format implied by the
// extension (.toml, .json, .yaml).
func main() {
	fmt.Print(jitflags.Debug())

	if len(os.Args) > 1 {
		path := os.Args[1]
		if err := jitflags.WriteEffective(path); err != nil {
			log.Fatalf("failed to write flag dump: %v", err)
		}
		fmt.Printf("wrote %s\n", path)
	}
}
