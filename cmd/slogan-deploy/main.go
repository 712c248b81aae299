package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dogesoundclub/slogan-deploy/internal/cli"
	"github.com/dogesoundclub/slogan-deploy/internal/config"
)

// Set with -ldflags "-X main.version=..."
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	config.SetBuildFlags(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.NewRootCmd(), os.Stderr)
	stop()
	os.Exit(code)
}
