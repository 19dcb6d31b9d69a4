/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/humaidq/vitals/markers"
)

var CmdExtract = &cli.Command{
	Name:      "extract",
	Usage:     "Extract lab markers from report text",
	ArgsUsage: "[FILE]",
	Flags: []cli.Flag{
		markersFileFlag(),
		maxTextBytesFlag(),
		&cli.BoolFlag{
			Name:  "summary",
			Usage: "include the report summary in the output",
		},
	},
	Action: extract,
}

type extractOutput struct {
	*markers.ExtractionResult

	Summary *markers.ReportSummary `json:"summary,omitempty"`
}

func extract(ctx context.Context, cmd *cli.Command) error {
	table, err := loadMarkerTable(cmd.String("markers-file"))
	if err != nil {
		return err
	}

	in, err := openInput(cmd)
	if err != nil {
		return err
	}

	defer func() {
		if err := in.Close(); err != nil {
			cliLogger.Warn("Failed to close input", "error", err)
		}
	}()

	return runExtract(in, cmd.Root().Writer, markers.NewExtractor(table), int64(cmd.Int("max-text-bytes")), cmd.Bool("summary"))
}

func runExtract(r io.Reader, w io.Writer, extractor *markers.Extractor, limit int64, withSummary bool) error {
	text, err := readLimited(r, limit)
	if err != nil {
		return err
	}

	result := extractor.Extract(string(text))

	cliLogger.Debug("Extracted markers",
		"text_length", result.TextLength,
		"markers_found", result.MarkersFound,
		"flagged", result.FlaggedCount(),
	)

	out := extractOutput{ExtractionResult: result}
	if withSummary {
		summary := markers.Summarize(result)
		out.Summary = &summary
	}

	return writeIndentedJSON(w, out)
}

func writeIndentedJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
