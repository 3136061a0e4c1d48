// Chassis - Frame semantics engine for SDFormat robot descriptions.
//
// Chassis indexes SDF documents in a workspace, builds and validates their
// frame graphs, and resolves frame poses for search and tooling.
package main

import (
	"fmt"
	"os"

	"github.com/Benny93/chassis/cmd"
)

func main() {
	cli := cmd.NewCLI()

	if err := cli.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
