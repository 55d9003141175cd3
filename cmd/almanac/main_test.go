package main

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/FocuswithJustin/Almanac/core/remap"
	"github.com/FocuswithJustin/Almanac/core/runlog"
	"github.com/FocuswithJustin/Almanac/internal/almanac"
)

// sampleAlmanac is the worked garden almanac. Its lowest location is 35 in
// values mode and 46 in ranges mode.
const sampleAlmanac = `seeds: 79 14 55 13

seed-to-soil map:
50 98 2
52 50 48

soil-to-fertilizer map:
0 15 37
37 52 2
39 0 15

fertilizer-to-water map:
49 53 8
0 11 42
42 0 7
57 7 4

water-to-light map:
88 18 7
18 25 70

light-to-temperature map:
45 77 23
81 45 19
68 64 13

temperature-to-humidity map:
0 69 1
1 0 69

humidity-to-location map:
60 56 37
56 93 4
`

// Test helper functions

func createAlmanacFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

func createGzAlmanacFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	defer f.Close()

	gw := gzip.NewWriter(f)
	if _, err := gw.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write compressed content: %v", err)
	}
	gw.Close()
	return path
}

func samplePipeline(t *testing.T) (*almanac.Document, *remap.Pipeline) {
	t.Helper()
	doc, err := almanac.Parse([]byte(sampleAlmanac))
	if err != nil {
		t.Fatalf("failed to parse sample: %v", err)
	}
	p, err := doc.Pipeline()
	if err != nil {
		t.Fatalf("failed to assemble pipeline: %v", err)
	}
	return doc, p
}

// Tests for SolveCmd

func TestSolveCmd_Run(t *testing.T) {
	tests := []struct {
		name    string
		ranges  bool
		trace   bool
		wantErr bool
	}{
		{name: "values mode", ranges: false, wantErr: false},
		{name: "ranges mode", ranges: true, wantErr: false},
		{name: "ranges mode with trace", ranges: true, trace: true, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			input := createAlmanacFile(t, tempDir, "sample.txt", sampleAlmanac)

			cmd := &SolveCmd{
				Input:  input,
				Ranges: tt.ranges,
				Trace:  tt.trace,
				From:   "seed",
				To:     "location",
			}
			err := cmd.Run()

			if (err != nil) != tt.wantErr {
				t.Errorf("SolveCmd.Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSolveCmd_Run_CompressedInput(t *testing.T) {
	tempDir := t.TempDir()
	input := createGzAlmanacFile(t, tempDir, "sample.txt.gz", sampleAlmanac)

	cmd := &SolveCmd{Input: input, From: "seed", To: "location"}
	if err := cmd.Run(); err != nil {
		t.Errorf("SolveCmd.Run() on compressed input failed: %v", err)
	}
}

func TestSolveCmd_Run_Record(t *testing.T) {
	tempDir := t.TempDir()
	input := createAlmanacFile(t, tempDir, "sample.txt", sampleAlmanac)
	dbPath := filepath.Join(tempDir, "runs.db")

	values := &SolveCmd{Input: input, From: "seed", To: "location", Record: dbPath}
	if err := values.Run(); err != nil {
		t.Fatalf("SolveCmd.Run() failed: %v", err)
	}
	ranges := &SolveCmd{Input: input, Ranges: true, From: "seed", To: "location", Record: dbPath}
	if err := ranges.Run(); err != nil {
		t.Fatalf("SolveCmd.Run() with ranges failed: %v", err)
	}

	store, err := runlog.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open run log: %v", err)
	}
	defer store.Close()

	runs, err := store.List(0)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("recorded %d runs, want 2", len(runs))
	}

	answers := map[string]uint64{}
	for _, run := range runs {
		answers[run.Mode] = run.Answer
		if run.InputSHA256 == "" || run.InputBLAKE3 == "" {
			t.Errorf("run %s is missing input digests", run.ID)
		}
		if run.Source != "seed" || run.Target != "location" {
			t.Errorf("run %s route = %s to %s, want seed to location", run.ID, run.Source, run.Target)
		}
	}
	if answers[runlog.ModeValues] != 35 {
		t.Errorf("values answer = %d, want 35", answers[runlog.ModeValues])
	}
	if answers[runlog.ModeRanges] != 46 {
		t.Errorf("ranges answer = %d, want 46", answers[runlog.ModeRanges])
	}
}

func TestSolveCmd_Run_MissingInput(t *testing.T) {
	cmd := &SolveCmd{
		Input: filepath.Join(t.TempDir(), "nonexistent.txt"),
		From:  "seed",
		To:    "location",
	}
	if err := cmd.Run(); err == nil {
		t.Error("expected error for nonexistent input file, got nil")
	}
}

func TestSolveCmd_Run_NoRoute(t *testing.T) {
	tempDir := t.TempDir()
	input := createAlmanacFile(t, tempDir, "sample.txt", sampleAlmanac)

	cmd := &SolveCmd{Input: input, From: "seed", To: "weather"}
	if err := cmd.Run(); err == nil {
		t.Error("expected error for unreachable target category, got nil")
	}
}

func TestSolveCmd_Run_OddSeedCount(t *testing.T) {
	tempDir := t.TempDir()
	input := createAlmanacFile(t, tempDir, "odd.txt",
		"seeds: 79 14 55\n\nseed-to-soil map:\n50 98 2\n")

	cmd := &SolveCmd{Input: input, Ranges: true, From: "seed", To: "soil"}
	if err := cmd.Run(); err == nil {
		t.Error("expected error for odd seed count in ranges mode, got nil")
	}
}

// Tests for InspectCmd

func TestInspectCmd_Run(t *testing.T) {
	tests := []struct {
		name string
		tree bool
	}{
		{name: "summary", tree: false},
		{name: "with rule trees", tree: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			input := createAlmanacFile(t, tempDir, "sample.txt", sampleAlmanac)

			cmd := &InspectCmd{Input: input, Tree: tt.tree}
			if err := cmd.Run(); err != nil {
				t.Errorf("InspectCmd.Run() failed: %v", err)
			}
		})
	}
}

func TestInspectCmd_Run_InvalidDocument(t *testing.T) {
	tempDir := t.TempDir()
	input := createAlmanacFile(t, tempDir, "bad.txt", "not an almanac at all")

	cmd := &InspectCmd{Input: input}
	if err := cmd.Run(); err == nil {
		t.Error("expected error for invalid document, got nil")
	}
}

// Tests for run log commands

func TestRunsListCmd_Run(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "runs.db")

	store, err := runlog.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to create run log: %v", err)
	}
	run := &runlog.Run{
		InputSHA256: "abc",
		InputBLAKE3: "def",
		Mode:        runlog.ModeValues,
		Source:      "seed",
		Target:      "location",
		Answer:      35,
	}
	if err := store.Record(run); err != nil {
		t.Fatalf("failed to record run: %v", err)
	}
	store.Close()

	cmd := &RunsListCmd{DB: dbPath, Limit: 20}
	if err := cmd.Run(); err != nil {
		t.Errorf("RunsListCmd.Run() failed: %v", err)
	}
}

func TestRunsListCmd_Run_EmptyLog(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "runs.db")

	store, err := runlog.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to create run log: %v", err)
	}
	store.Close()

	cmd := &RunsListCmd{DB: dbPath, Limit: 20}
	if err := cmd.Run(); err != nil {
		t.Errorf("RunsListCmd.Run() failed: %v", err)
	}
}

func TestRunShowCmd_Run(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "runs.db")

	store, err := runlog.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to create run log: %v", err)
	}
	run := &runlog.Run{
		InputSHA256: "abc",
		InputBLAKE3: "def",
		Mode:        runlog.ModeRanges,
		Source:      "seed",
		Target:      "location",
		Answer:      46,
	}
	if err := store.Record(run); err != nil {
		t.Fatalf("failed to record run: %v", err)
	}
	store.Close()

	cmd := &RunShowCmd{DB: dbPath, ID: run.ID}
	if err := cmd.Run(); err != nil {
		t.Errorf("RunShowCmd.Run() failed: %v", err)
	}

	missing := &RunShowCmd{DB: dbPath, ID: "no-such-run"}
	if err := missing.Run(); err == nil {
		t.Error("expected error for unknown run ID, got nil")
	}
}

func TestVersionCmd_Run(t *testing.T) {
	cmd := &VersionCmd{}
	if err := cmd.Run(); err != nil {
		t.Errorf("VersionCmd.Run() failed: %v", err)
	}
}

// Tests for solve helpers

func TestSolveValues(t *testing.T) {
	doc, p := samplePipeline(t)

	answer, err := solveValues(p, doc.SeedValues(), "seed", "location")
	if err != nil {
		t.Fatalf("solveValues failed: %v", err)
	}
	if answer != 35 {
		t.Errorf("lowest location = %d, want 35", answer)
	}

	answer, err = solveValues(p, doc.SeedValues(), "seed", "soil")
	if err != nil {
		t.Fatalf("solveValues to soil failed: %v", err)
	}
	if answer != 13 {
		t.Errorf("lowest soil = %d, want 13", answer)
	}

	if _, err := solveValues(p, nil, "seed", "location"); err == nil {
		t.Error("solveValues accepted an empty seed list")
	}
}

func TestSolveRanges(t *testing.T) {
	doc, p := samplePipeline(t)

	seedRanges, err := doc.SeedRanges()
	if err != nil {
		t.Fatalf("SeedRanges failed: %v", err)
	}
	answer, err := solveRanges(p, seedRanges, "seed", "location")
	if err != nil {
		t.Fatalf("solveRanges failed: %v", err)
	}
	if answer != 46 {
		t.Errorf("lowest location start = %d, want 46", answer)
	}

	if _, err := solveRanges(p, nil, "seed", "location"); err == nil {
		t.Error("solveRanges accepted an empty range list")
	}
}

func TestFormatRoute(t *testing.T) {
	got := formatRoute([]remap.Category{"seed", "soil", "fertilizer"})
	want := "seed -> soil -> fertilizer"
	if got != want {
		t.Errorf("formatRoute = %q, want %q", got, want)
	}
}
