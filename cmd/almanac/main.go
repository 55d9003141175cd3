// Command almanac solves and inspects range-remap almanac documents.
// It maps seed numbers through category-to-category pipelines, walks whole
// seed ranges without enumerating them, and records solves in a run log.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/Almanac/core/interval"
	"github.com/FocuswithJustin/Almanac/core/remap"
	"github.com/FocuswithJustin/Almanac/core/runlog"
	"github.com/FocuswithJustin/Almanac/core/sqlite"
	"github.com/FocuswithJustin/Almanac/internal/almanac"
	"github.com/FocuswithJustin/Almanac/internal/fileutil"
	"github.com/FocuswithJustin/Almanac/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for almanac.
var CLI struct {
	// Global flags
	LogLevel  string `default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFormat string `default:"text" enum:"text,json" help:"Log format (text, json)"`

	Solve   SolveCmd   `cmd:"" help:"Solve an almanac: map its seeds to the target category"`
	Inspect InspectCmd `cmd:"" help:"Show the structure of an almanac document"`
	Runs    RunsGroup  `cmd:"" help:"Recorded solve operations"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// RunsGroup contains run log operations.
type RunsGroup struct {
	List RunsListCmd `cmd:"" help:"List recorded runs"`
	Show RunShowCmd  `cmd:"" help:"Show one recorded run"`
}

// SolveCmd maps an almanac's seeds to the target category and reports the
// lowest reachable number.
type SolveCmd struct {
	Input  string `arg:"" help:"Almanac document (text or XML, optionally .gz/.xz compressed)" type:"existingfile"`
	Ranges bool   `help:"Interpret the seeds line as (start, length) pairs"`
	From   string `default:"seed" help:"Category of the seed numbers"`
	To     string `default:"location" help:"Category to map into"`
	Trace  bool   `help:"Write per-hop interval traces to stderr (ranges mode)"`
	Record string `help:"Record the solve in this run log database" type:"path"`
}

func (c *SolveCmd) Run() error {
	doc, data, err := loadDocument(c.Input)
	if err != nil {
		return err
	}
	pipeline, err := doc.Pipeline()
	if err != nil {
		return fmt.Errorf("failed to assemble pipeline: %w", err)
	}
	if c.Trace {
		pipeline.Trace = os.Stderr
	}

	from := remap.Category(c.From)
	to := remap.Category(c.To)
	route, err := pipeline.Route(from, to)
	if err != nil {
		return fmt.Errorf("no route from %s to %s: %w", c.From, c.To, err)
	}

	mode := runlog.ModeValues
	if c.Ranges {
		mode = runlog.ModeRanges
	}

	start := time.Now()
	var answer uint64
	if c.Ranges {
		seedRanges, err := doc.SeedRanges()
		if err != nil {
			return err
		}
		answer, err = solveRanges(pipeline, seedRanges, from, to)
		if err != nil {
			return err
		}
	} else {
		answer, err = solveValues(pipeline, doc.SeedValues(), from, to)
		if err != nil {
			return err
		}
	}
	elapsed := time.Since(start)
	logging.SolveCompleted(mode, c.From, c.To, answer, elapsed)

	fmt.Printf("Solved: %s\n", c.Input)
	fmt.Printf("  Mode:  %s\n", mode)
	fmt.Printf("  Route: %s\n", formatRoute(route))
	fmt.Printf("  Lowest %s: %d\n", c.To, answer)

	if c.Record != "" {
		store, err := runlog.Open(c.Record)
		if err != nil {
			return fmt.Errorf("failed to open run log: %w", err)
		}
		defer store.Close()

		sha256Hex, blake3Hex := runlog.Digests(data)
		run := &runlog.Run{
			InputSHA256: sha256Hex,
			InputBLAKE3: blake3Hex,
			Mode:        mode,
			Source:      c.From,
			Target:      c.To,
			Answer:      answer,
			Duration:    elapsed,
		}
		if err := store.Record(run); err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
		logging.RunRecorded(run.ID, c.Record)
		fmt.Printf("  Recorded: %s\n", run.ID)
	}
	return nil
}

// InspectCmd shows the structure of an almanac document.
type InspectCmd struct {
	Input string `arg:"" help:"Almanac document (text or XML, optionally .gz/.xz compressed)" type:"existingfile"`
	Tree  bool   `help:"Print each map's rules in ascending source order"`
}

func (c *InspectCmd) Run() error {
	data, err := fileutil.ReadInput(c.Input)
	if err != nil {
		return err
	}
	format := almanac.Detect(data)
	doc, err := almanac.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", c.Input, err)
	}
	pipeline, err := doc.Pipeline()
	if err != nil {
		return fmt.Errorf("failed to assemble pipeline: %w", err)
	}

	fmt.Printf("Document: %s\n", c.Input)
	fmt.Printf("  Format: %s\n", format)
	fmt.Printf("  Seeds:  %d value(s)\n", len(doc.Seeds))
	fmt.Printf("  Maps:   %d\n", len(doc.Maps))
	fmt.Println()

	for _, block := range doc.Maps {
		fmt.Printf("%s-to-%s map: %d rule(s)\n", block.Source, block.Target, len(block.Rules))
		if !c.Tree {
			continue
		}
		m, ok := pipeline.Lookup(remap.Category(block.Source))
		if !ok {
			continue
		}
		m.Walk(func(r interval.Rule, maxEnd uint64) {
			fmt.Printf("  %s -> %s (subtree reaches %d)\n", r.Source, r.Target, maxEnd)
		})
	}
	return nil
}

// RunsListCmd lists recorded runs, newest first.
type RunsListCmd struct {
	DB    string `required:"" help:"Run log database path" type:"existingfile"`
	Limit int    `default:"20" help:"Maximum runs to list (0 for all)"`
}

func (c *RunsListCmd) Run() error {
	store, err := runlog.Open(c.DB)
	if err != nil {
		return fmt.Errorf("failed to open run log: %w", err)
	}
	defer store.Close()

	runs, err := store.List(c.Limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	fmt.Printf("Runs in %s:\n\n", c.DB)
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}
	for _, run := range runs {
		fmt.Printf("  %s\n", run.ID)
		fmt.Printf("    Created: %s\n", run.CreatedAt.Format(time.RFC3339))
		fmt.Printf("    Mode:    %s (%s to %s)\n", run.Mode, run.Source, run.Target)
		fmt.Printf("    Answer:  %d\n", run.Answer)
	}
	return nil
}

// RunShowCmd shows one recorded run in full.
type RunShowCmd struct {
	DB string `required:"" help:"Run log database path" type:"existingfile"`
	ID string `arg:"" help:"Run ID"`
}

func (c *RunShowCmd) Run() error {
	store, err := runlog.Open(c.DB)
	if err != nil {
		return fmt.Errorf("failed to open run log: %w", err)
	}
	defer store.Close()

	run, err := store.Get(c.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Run: %s\n", run.ID)
	fmt.Printf("  Created:  %s\n", run.CreatedAt.Format(time.RFC3339Nano))
	fmt.Printf("  Mode:     %s\n", run.Mode)
	fmt.Printf("  Route:    %s to %s\n", run.Source, run.Target)
	fmt.Printf("  Answer:   %d\n", run.Answer)
	fmt.Printf("  Duration: %s\n", run.Duration)
	fmt.Printf("  SHA-256:  %s\n", run.InputSHA256)
	fmt.Printf("  BLAKE3:   %s\n", run.InputBLAKE3)
	return nil
}

// VersionCmd prints version and driver information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("almanac version %s\n", version)
	info := sqlite.GetInfo()
	fmt.Printf("  SQLite driver: %s (%s)\n", info.Package, info.DriverType)
	return nil
}

// Helper functions

func loadDocument(path string) (*almanac.Document, []byte, error) {
	data, err := fileutil.ReadInput(path)
	if err != nil {
		return nil, nil, err
	}
	doc, err := almanac.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	logging.DocumentParsed(string(almanac.Detect(data)), len(doc.Seeds), len(doc.Maps))
	return doc, data, nil
}

func solveValues(p *remap.Pipeline, seeds []uint64, from, to remap.Category) (uint64, error) {
	if len(seeds) == 0 {
		return 0, fmt.Errorf("document has no seed values")
	}
	var lowest uint64
	for i, n := range seeds {
		v, err := p.Map(remap.Value{Category: from, Number: n}, to)
		if err != nil {
			return 0, fmt.Errorf("failed to map %s %d: %w", from, n, err)
		}
		if i == 0 || v.Number < lowest {
			lowest = v.Number
		}
	}
	return lowest, nil
}

func solveRanges(p *remap.Pipeline, seedRanges []interval.Interval, from, to remap.Category) (uint64, error) {
	var mapped []interval.Interval
	for _, r := range seedRanges {
		pieces, err := p.MapRange(r, from, to)
		if err != nil {
			return 0, fmt.Errorf("failed to map %s range %s: %w", from, r, err)
		}
		mapped = append(mapped, pieces...)
	}
	lowest, ok := remap.MinStart(mapped)
	if !ok {
		return 0, fmt.Errorf("document has no seed ranges")
	}
	return lowest, nil
}

func formatRoute(route []remap.Category) string {
	parts := make([]string, len(route))
	for i, c := range route {
		parts[i] = string(c)
	}
	return strings.Join(parts, " -> ")
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("almanac"),
		kong.Description("Range remapper - walk numbers and whole ranges through category maps"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(logging.LevelFromString(CLI.LogLevel), logging.FormatFromString(CLI.LogFormat))
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
