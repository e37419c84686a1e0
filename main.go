package main

import (
	"fmt"
	"os"

	_ "github.com/AntTheLimey/ddldoc/internal/checks"
	"github.com/AntTheLimey/ddldoc/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
