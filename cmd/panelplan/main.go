package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/panelplan/pkg/export"
	"github.com/dshills/panelplan/pkg/panelplan"
)

const version = "1.0.0"

var (
	scenarioPath = flag.String("scenario", "", "Path to YAML scenario file (boundary, boreholes, config) (required)")
	outputDir    = flag.String("output", ".", "Output directory for generated files")
	svgOut       = flag.Bool("svg", true, "Write a diagnostic SVG of the resulting plan")
	timeoutFlag  = flag.Duration("timeout", 30*time.Second, "Wall-clock budget for the request")
	verbose      = flag.Bool("verbose", false, "Enable verbose output")
	versionF     = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("panelplan version %s\n", version)
		os.Exit(0)
	}

	if *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -scenario flag is required")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *verbose {
		fmt.Printf("Loading scenario from %s\n", *scenarioPath)
	}

	scenario, err := panelplan.LoadScenario(*scenarioPath)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	pipeline := panelplan.NewPipeline()
	const sessionToken = "cli"

	start := time.Now()
	boundary := scenario.Polygon()
	boreholes := scenario.GeologyBoreholes()
	cfg := scenario.Config

	if *verbose {
		fmt.Printf("Building geology model: %d boreholes, resolution %d\n", len(boreholes), cfg.Resolution)
	}
	model, err := pipeline.BuildGeology(ctx, sessionToken, boundary, boreholes, cfg.Resolution, cfg.CoalSeamSelection())
	if err != nil {
		return fmt.Errorf("buildGeology failed: %w", err)
	}
	if *verbose {
		fmt.Printf("  strike=%.1f dipDirection=%.1f dipAngle=%.1f avgDepth=%.1f\n", model.Strike, model.DipDirection, model.DipAngle, model.AvgDepth)
	}

	if *verbose {
		fmt.Println("Scoring...")
	}
	bundle, err := pipeline.Score(ctx, sessionToken, cfg.Weights.ToWeights(), cfg.Resolution)
	if err != nil {
		return fmt.Errorf("score failed: %w", err)
	}

	if *verbose {
		fmt.Printf("Planning with mode=%s...\n", cfg.Layout.Mode)
	}
	result, err := pipeline.Plan(ctx, sessionToken, cfg.Layout.Mode, cfg.Layout.ToOverrides(), cfg.Layout.LockedPanels)
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}

	elapsed := time.Since(start)
	fmt.Printf("Generated %d panels, %d pillars, %d roadways in %v\n", len(result.Panels), len(result.Pillars), len(result.Roadways), elapsed)
	fmt.Printf("Overall design score: %.1f\n", result.Validation.OverallScore)
	for _, w := range result.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	for _, pr := range result.Validation.Panels {
		if pr.Vetoed {
			fmt.Printf("  vetoed: panel %s grade %s (%v)\n", pr.PanelID, pr.Grade, pr.VetoReasons)
		}
	}

	baseName := filepath.Base(*scenarioPath)
	baseName = baseName[:len(baseName)-len(filepath.Ext(baseName))]

	if *svgOut {
		grid, _ := bundle.GridFor(cfg.Layout.Mode)
		opts := export.DefaultPlanSVGOptions()
		opts.Title = fmt.Sprintf("Panel Layout - %s", baseName)
		opts.Grid = grid
		filename := filepath.Join(*outputDir, baseName+".svg")
		if err := export.SavePlanSVGToFile(result, boundary, filename, opts); err != nil {
			return fmt.Errorf("failed to export SVG: %w", err)
		}
		if *verbose {
			fmt.Printf("Wrote %s\n", filename)
		}
	}

	return nil
}
