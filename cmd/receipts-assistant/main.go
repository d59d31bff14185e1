package main

import (
	"os"

	"github.com/vesasusuri/receipts-assistant/cmd/receipts-assistant/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
