package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/TinaMuuto/powerpoint-EY/internal/config"
	"github.com/TinaMuuto/powerpoint-EY/internal/dataset"
	"github.com/TinaMuuto/powerpoint-EY/internal/media"
	"github.com/TinaMuuto/powerpoint-EY/internal/pipeline"
	"github.com/TinaMuuto/powerpoint-EY/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	logger := buildLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "generate":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		items := fs.String("items", "", "user item file path")
		itemsType := fs.String("type", "xlsx", "xlsx|html|pdf")
		out := fs.String("out", "", "output deck path (defaults to OUTPUT_DIR/deck.json)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*items) == "" {
			must(fmt.Errorf("--items is required"))
		}
		outPath := *out
		if strings.TrimSpace(outPath) == "" {
			outPath = filepath.Join(cfg.OutputDir, "deck.json")
		}

		in, err := pipeline.LoadInputs(cfg, *items, *itemsType)
		must(err)

		fetcher := media.NewFetcher(time.Duration(cfg.ImageTimeoutMs)*time.Millisecond, cfg.ImageMaxDim, cfg.ImageQuality)
		gen := pipeline.NewGenerator(cfg, logger, fetcher)
		summary, outcomes, err := gen.Run(context.Background(), in)
		must(err)

		must(in.Deck.Save(outPath))

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()
		runID, err := db.InsertRun(summary, outcomes)
		must(err)

		fmt.Printf("generate done runId=%d items=%d rendered=%d skipped=%d warnings=%d output=%s\n",
			runID, summary.Items, summary.Rendered, summary.Skipped, summary.Warnings, outPath)
	case "validate":
		mapping, err := dataset.LoadTable("mapping file", cfg.MappingFilePath)
		must(err)
		stockTbl, err := dataset.LoadTable("stock file", cfg.StockFilePath)
		must(err)
		must(pipeline.ValidateTables(mapping, stockTbl))
		fmt.Printf("validate ok mapping_rows=%d stock_rows=%d\n", len(mapping.Rows), len(stockTbl.Rows))
	case "report:export":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		runID := fs.Int64("runId", 0, "run id")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if *runID == 0 || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--runId and --out are required"))
		}

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()
		rows, err := db.GetRunReport(*runID)
		must(err)
		if len(rows) == 0 {
			must(fmt.Errorf("no report rows for runId=%d", *runID))
		}
		must(pipeline.ExportReportToXLSX(rows, *out))
		fmt.Printf("exported %d rows to %s\n", len(rows), *out)
	default:
		usage()
		os.Exit(1)
	}
}

func buildLogger(level string) *zap.Logger {
	parsed, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(parsed)
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func usage() {
	fmt.Println("usage: slidegen <command>")
	fmt.Println("commands:")
	fmt.Println("  generate --items=items.xlsx [--type=xlsx|html|pdf] [--out=./out/deck.json]")
	fmt.Println("  validate")
	fmt.Println("  report:export --runId=1 --out=./out/report.xlsx")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
