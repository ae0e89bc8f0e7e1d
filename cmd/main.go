package main

import (
	"context"
	"fmt"
	"os"

	"github.com/atabernermiller/taberner-studio-app/internal/app"
)

func main() {
	a, err := app.New(context.Background())
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		a.Log.Error("Server failed", "error", err)
	}
}
