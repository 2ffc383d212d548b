package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-bake/internal/command/bake"
	"github.com/lwmacct/251207-go-pkg-bake/internal/version"
)

func main() {
	app := &cli.Command{
		Name:    version.AppRawName,
		Usage:   "模板片段拼装工具",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			version.Command,
			bake.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
