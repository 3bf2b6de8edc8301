// RackPlan: rack cabinet layout planner
//
// A command-line tool for placing equipment into 19" rack cabinets and
// checking power, weight and unit usage against the cabinet limits.
//
// Build:
//   go build -o rackplan ./cmd/rackplan
//
// Quick start:
//   rackplan new --cabinet cab-1
//   rackplan place eq-2 1
//   rackplan show

package main

import (
	"fmt"
	"os"

	"github.com/piwi3910/RackPlan/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
