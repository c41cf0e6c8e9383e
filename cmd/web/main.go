package main

import (
	"fmt"
	"os"

	"sentipulse/internal/app"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}
