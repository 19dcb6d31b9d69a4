/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/flamego/flamego"
	"github.com/urfave/cli/v3"

	"github.com/humaidq/vitals/db"
	"github.com/humaidq/vitals/markers"
	"github.com/humaidq/vitals/routes"
)

const shutdownTimeout = 10 * time.Second

var CmdStart = &cli.Command{
	Name:    "start",
	Aliases: []string{"run"},
	Usage:   "Start the web server",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Sources: cli.EnvVars("PORT"),
			Value:   "8080",
			Usage:   "the web server port",
		},
		databaseURLFlag(),
		markersFileFlag(),
		maxTextBytesFlag(),
		&cli.IntFlag{
			Name:    "assessment-reports",
			Sources: cli.EnvVars("ASSESSMENT_REPORTS"),
			Value:   routes.DefaultAssessmentReports,
			Usage:   "number of most recent lab reports included in an assessment",
		},
		&cli.IntFlag{
			Name:    "wearable-days",
			Sources: cli.EnvVars("WEARABLE_DAYS"),
			Value:   routes.DefaultWearableDays,
			Usage:   "days of wearable data summarized for an assessment",
		},
		logLevelFlag(),
	},
	Action: start,
}

func start(ctx context.Context, cmd *cli.Command) error {
	if err := applyLogLevel(cmd); err != nil {
		return err
	}

	databaseURL := cmd.String("database-url")
	if databaseURL == "" {
		return errDatabaseURLRequired
	}

	table, err := loadMarkerTable(cmd.String("markers-file"))
	if err != nil {
		return err
	}

	appLogger.Info("Connecting to database")

	if err := db.Init(ctx, databaseURL); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	appLogger.Info("Syncing database schema")

	if err := db.SyncSchema(ctx); err != nil {
		return fmt.Errorf("failed to sync schema: %w", err)
	}

	if err := db.SyncMarkerDefinitions(ctx, table); err != nil {
		return fmt.Errorf("failed to sync marker definitions: %w", err)
	}

	active, err := db.ListActiveMarkerNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list marker definitions: %w", err)
	}

	appLogger.Info("Database schema synced successfully", "active_markers", len(active))

	f := newApp(routes.Options{
		Extractor:         markers.NewExtractor(table),
		MaxTextBytes:      int64(cmd.Int("max-text-bytes")),
		AssessmentReports: cmd.Int("assessment-reports"),
		WearableDays:      cmd.Int("wearable-days"),
	})

	port := cmd.String("port")

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", port),
		Handler:      f,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     requestStdLogger,
	}

	return serve(ctx, srv)
}

// newApp builds the flamego application serving the API.
func newApp(opts routes.Options) *flamego.Flame {
	f := flamego.New()
	f.Use(routes.RequestLogger)
	f.Use(flamego.Recovery())
	routes.Mount(f, opts)

	return f
}

// serve runs srv until it fails or ctx is cancelled, then shuts it down.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)

	go func() {
		appLogger.Info("Starting web server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down web server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down web server: %w", err)
	}

	return nil
}
