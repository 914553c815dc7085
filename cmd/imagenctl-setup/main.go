// imagenctl-setup walks the user through environment bootstrapping for
// imagenctl: runtime check, local state, gcloud discovery, browser
// authentication, project selection and a test generation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"imagenctl/internal/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("Welcome to the imagenctl setup wizard")
	fmt.Println(strings.Repeat("=", 80))

	wizard := services.NewSetupService(os.Stdin, os.Stdout)
	if err := wizard.Run(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nSetup cancelled by user.")
		}
		os.Exit(1)
	}
}
