// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command evsim runs the simulator demos.
package main

import (
	"fmt"
	"os"

	"github.com/db47h/evsim/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "evsim: %v\n", err)
		os.Exit(1)
	}
}
