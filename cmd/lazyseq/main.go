package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/adamluzsi/lazyseq/internal/lazyseqcli"
	"github.com/joho/godotenv"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	c, err := lazyseqcli.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(cli.ExitCodeBadRequest)
	}
	logger.Configure(func(l *logging.Logger) {
		l.Level = c.LogLevel
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli.Main(ctx, lazyseqcli.New(c))
}
