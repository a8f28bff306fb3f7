// Package main provides the coc binary, which rolls Call of Cthulhu
// character sheets.
//
// Usage:
//
//	coc char [-rule coc6|coc7] [-config path] [-table path] [-seed n] [-format text|yaml] [-concurrent]
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ebina4yaka/coc-cli-tool/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.New(os.Stdout, os.Stderr).Run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
