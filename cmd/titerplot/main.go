// Command titerplot reads per-strain titer tables, renders the
// grouped before/after bar charts into one PNG figure, and optionally
// writes a Markdown report and archives the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"serovis/adapters/excel"
	"serovis/adapters/gonumplot"
	"serovis/adapters/postgres"
	"serovis/app"
	"serovis/domain/titer"
	"serovis/internal"
	"serovis/internal/config"
	"serovis/internal/report"
	"serovis/internal/summary"
	"serovis/ports"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "titerplot:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	cfg := config.Load()
	log := internal.NewDefaultLogger()

	input := flag.String("input", cfg.Input.Path, "xlsx workbook (one sheet per strain) or directory of per-strain CSVs")
	out := flag.String("out", cfg.Output.FigurePath, "output PNG path")
	reportPath := flag.String("report", cfg.Output.ReportPath, "optional Markdown report path")
	subject := flag.String("subject", cfg.Input.SubjectCol, "subject identifier column")
	group := flag.String("group", cfg.Input.GroupVar, "optional grouping column")
	cols := flag.Int("cols", cfg.Input.Cols, "display columns for the composed figure")
	flag.Parse()

	if *input == "" {
		return fmt.Errorf("no input: pass -input or set SEROVIS_INPUT")
	}

	tables, err := excel.NewDataReader(*input).ReadStrainTables()
	if err != nil {
		return err
	}
	log.Info("loaded %d strain tables from %s", len(tables), *input)

	ctx := context.Background()

	var archive ports.RunArchive
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to archive database: %w", err)
		}
		defer db.Close()
		archive, err = postgres.NewRunArchive(ctx, db)
		if err != nil {
			return err
		}
	}

	opts := titer.Options{
		SubjectCol: *subject,
		GroupVar:   *group,
		Cols:       *cols,
	}

	svc := app.NewPlotService(gonumplot.NewRenderer(), gonumplot.NewGridLayout(), archive, log)
	res, err := svc.Run(ctx, tables, opts, *out)
	if err != nil {
		return err
	}

	if *reportPath != "" {
		rec := titer.NewRunRecord(tables, opts, res.Specs)
		md := report.Markdown(rec, summary.Summarize(res), res.Specs)
		if err := os.WriteFile(*reportPath, []byte(md), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		log.Info("report written to %s", *reportPath)
	}

	return nil
}
