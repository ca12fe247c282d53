package main

import (
	"fmt"
	"os"

	"emotion-audio/cmd/emotion-audio/cmd"
	"emotion-audio/internal/config"
)

func main() {
	// A missing .env is fine; variables may be set system-wide
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
	}

	cmd.Execute()
}
