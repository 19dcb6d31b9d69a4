/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/vitals/cmd"
	"github.com/humaidq/vitals/logging"
)

func main() {
	app := &cli.Command{
		Name:  "vitals",
		Usage: "Vitals - Lab Marker Extraction and Health Scoring",
		Commands: []*cli.Command{
			cmd.CmdStart,
			cmd.CmdMigrate,
			cmd.CmdExtract,
			cmd.CmdScore,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		logging.Logger(logging.SourceApp).Error("Command failed", "error", err)
		stop()
		os.Exit(1)
	}
}
