package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hironow/polyglot"
	"github.com/hironow/polyglot/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.NewRootCommand()

	// `polyglot [flags] <locale-dir>` is shorthand for `polyglot sync`.
	args := os.Args[1:]
	if cmd.NeedsDefaultSync(rootCmd, args) {
		args = append([]string{"sync"}, args...)
	}
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	code := cmd.ExitCode(err)
	if ctx.Err() != nil {
		polyglot.LogWarn("%s", polyglot.Msg("interrupted"))
		code = 130
	}
	stop()
	os.Exit(code)
}
