// Command pmv predicts thermal comfort from room conditions, clothing and
// activity. It serves the HTTP form and JSON API, runs one-shot assessments
// from the command line, and opens an interactive terminal form.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/thermal-comfort-service/internal/config"
)

var version = "dev"

func main() {
	config.LoadDotEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(newApp()).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
