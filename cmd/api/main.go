package main

import (
	"fmt"
	"os"

	_ "presence-stats-service/docs"
)

// @title Presence Stats Service API
// @version 1.0
// @description Records who is present on the network and serves ranked presence time per calendar period.
// @BasePath /
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
