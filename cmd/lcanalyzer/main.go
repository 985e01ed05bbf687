package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

func main() {
	root, closeFn := newRootCmd(afero.NewOsFs(), os.Stdout)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeFn()
		os.Exit(1)
	}
	closeFn()
}
