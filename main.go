package main

import (
	"os"

	"github.com/samyrami/exporta-facil-bot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
