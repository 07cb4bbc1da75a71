package main

import (
	"os"

	"github.com/hbjs97/rv/internal/cli"
)

func main() {
	app := cli.NewApp()
	cmd := app.NewRootCmd()
	err := cmd.Execute()
	if app.Logger != nil {
		_ = app.Logger.Sync() // stderr sync 실패는 무시
	}
	if err != nil {
		os.Exit(int(cli.MapExitCode(err)))
	}
}
