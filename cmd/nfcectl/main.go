package main

import (
	"os"

	"github.com/setxpro/nfce-api/cmd/nfcectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
