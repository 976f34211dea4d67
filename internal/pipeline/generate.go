package pipeline

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TinaMuuto/powerpoint-EY/internal"
	"github.com/TinaMuuto/powerpoint-EY/internal/catalog"
	"github.com/TinaMuuto/powerpoint-EY/internal/config"
	"github.com/TinaMuuto/powerpoint-EY/internal/dataset"
	"github.com/TinaMuuto/powerpoint-EY/internal/deck"
	"github.com/TinaMuuto/powerpoint-EY/internal/render"
	"github.com/TinaMuuto/powerpoint-EY/internal/stock"
)

// Inputs is everything one run consumes: the two validated tables,
// the authoring deck and the item list.
type Inputs struct {
	Mapping *dataset.Table
	Stock   *dataset.Table
	Deck    *deck.Deck
	Items   []internal.InputItem
}

// LoadInputs reads and validates the mapping, stock and template
// files. A missing required column is fatal before any slide is made.
func LoadInputs(cfg config.Config, itemsPath, itemsType string) (*Inputs, error) {
	mapping, err := dataset.LoadTable("mapping file", cfg.MappingFilePath)
	if err != nil {
		return nil, err
	}
	stockTbl, err := dataset.LoadTable("stock file", cfg.StockFilePath)
	if err != nil {
		return nil, err
	}
	if err := ValidateTables(mapping, stockTbl); err != nil {
		return nil, err
	}

	d, err := deck.Load(cfg.TemplateFilePath)
	if err != nil {
		return nil, err
	}

	items, err := dataset.ItemsFromInput(itemsType, itemsPath)
	if err != nil {
		return nil, err
	}

	return &Inputs{Mapping: mapping, Stock: stockTbl, Deck: d, Items: items}, nil
}

func ValidateTables(mapping, stockTbl *dataset.Table) error {
	if err := mapping.RequireColumns(internal.RequiredMappingColumns()); err != nil {
		return err
	}
	return stockTbl.RequireColumns(internal.RequiredStockColumns())
}

// Generator renders one deck per run, strictly sequentially: each item
// is fully resolved and rendered before the next begins.
type Generator struct {
	cfg    config.Config
	log    *zap.Logger
	engine *render.Engine
}

func NewGenerator(cfg config.Config, log *zap.Logger, fetcher render.ImageFetcher) *Generator {
	return &Generator{cfg: cfg, log: log, engine: render.NewEngine(fetcher)}
}

// Run mutates in.Deck: the authoring slide is removed once and one
// clone is appended per resolved item, in input order. Unresolved
// items are skipped with a warning; only a missing template slide or
// broken input aborts.
func (g *Generator) Run(ctx context.Context, in *Inputs) (internal.RunSummary, []internal.ItemOutcome, error) {
	start := time.Now()
	if len(in.Deck.Slides) == 0 {
		return internal.RunSummary{}, nil, fmt.Errorf("template must contain at least one slide")
	}
	template := in.Deck.Slides[0]
	in.Deck.RemoveSlide(0)

	idx := catalog.BuildIndex(in.Mapping, "{{"+internal.TokenProductCode+"}}")
	stockCfg := stock.Config{
		ProductKeyColumn: internal.StockProductKeyColumn,
		VariantColumn:    internal.StockVariantColumn,
	}
	layout := stock.Layout(g.cfg.StockLayout)

	summary := internal.RunSummary{TraceID: traceID(), Items: len(in.Items)}
	outcomes := make([]internal.ItemOutcome, 0, len(in.Items))

	for _, item := range in.Items {
		outcome := internal.ItemOutcome{
			LineNo:     item.LineNo,
			ItemNo:     item.ItemNo,
			Source:     item.Source,
			SlideIndex: -1,
		}

		row, ok := idx.Resolve(item.ItemNo)
		if !ok {
			warning := fmt.Sprintf("no mapping row found for item no: %s", item.ItemNo)
			g.log.Warn("item skipped",
				zap.String("traceId", summary.TraceID),
				zap.String("itemNo", item.ItemNo),
				zap.Int("lineNo", item.LineNo))
			outcome.Status = internal.ItemSkipped
			outcome.Warnings = append(outcome.Warnings, warning)
			outcomes = append(outcomes, outcome)
			summary.Skipped++
			summary.Warnings++
			continue
		}

		fields := render.BuildFields(row, in.Stock, stockCfg, layout)
		slide := template.Clone()
		stats := g.engine.Apply(ctx, slide, fields)
		in.Deck.AddSlide(slide)

		outcome.Status = internal.ItemRendered
		outcome.SlideIndex = len(in.Deck.Slides) - 1
		outcome.Texts = stats.Texts
		outcome.Links = stats.Links
		outcome.Images = stats.Images
		outcome.Warnings = stats.Warnings
		outcomes = append(outcomes, outcome)
		summary.Rendered++
		summary.Warnings += len(stats.Warnings)

		for _, w := range stats.Warnings {
			g.log.Warn(w, zap.String("traceId", summary.TraceID), zap.String("itemNo", item.ItemNo))
		}
		g.log.Debug("slide rendered",
			zap.String("traceId", summary.TraceID),
			zap.String("itemNo", item.ItemNo),
			zap.Int("texts", stats.Texts),
			zap.Int("links", stats.Links),
			zap.Int("images", stats.Images))
	}

	g.log.Info("run complete",
		zap.String("traceId", summary.TraceID),
		zap.Int("items", summary.Items),
		zap.Int("rendered", summary.Rendered),
		zap.Int("skipped", summary.Skipped),
		zap.Int("warnings", summary.Warnings),
		zap.Duration("took", time.Since(start)))

	return summary, outcomes, nil
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
