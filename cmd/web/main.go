package main

import (
	"context"
	"fmt"
	"os"

	"esgpulse/internal/app"
)

func main() {
	ctx := context.Background()

	application, err := app.NewApplication(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		application.Logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
