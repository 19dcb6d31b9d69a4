/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/vitals/scoring"
)

var CmdScore = &cli.Command{
	Name:      "score",
	Usage:     "Compute a health score from a wearable summary and extraction results",
	ArgsUsage: "[FILE]",
	Action:    score,
}

func score(ctx context.Context, cmd *cli.Command) error {
	in, err := openInput(cmd)
	if err != nil {
		return err
	}

	defer func() {
		if err := in.Close(); err != nil {
			cliLogger.Warn("Failed to close input", "error", err)
		}
	}()

	return runScore(in, cmd.Root().Writer)
}

func runScore(r io.Reader, w io.Writer) error {
	req, err := scoring.DecodeScoreRequest(r)
	if err != nil {
		return err
	}

	assessment := scoring.Score(req.Wearable, req.Reports)

	cliLogger.Debug("Computed health assessment",
		"score", assessment.Score,
		"rating", assessment.Rating,
		"reports", len(req.Reports),
	)

	return writeIndentedJSON(w, assessment)
}
