package main

import (
	"os"

	"github.com/daylio-dash/daylio-dash/dashservice"
)

func main() {
	if err := dashservice.Run(); err != nil {
		os.Exit(1)
	}
}
