package main

import (
	"fmt"
	"os"

	"github.com/m04kA/appointy-booking/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "appointyctl: %v\n", err)
		os.Exit(1)
	}
}
