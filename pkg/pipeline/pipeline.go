// Package pipeline runs the complete load → assemble → pack → export flow.
//
// The pipeline centralizes the end-to-end run so the CLI commands stay thin
// and every entry point behaves identically.
//
// # Architecture
//
// A full run has four stages:
//
//  1. Load: scan the asset directory into a classified card pool
//  2. Assemble: build seed-controlled standard boosters and land boosters
//  3. Pack: lay the booster card sequence onto grid sheets and compose them
//  4. Export: write sheet textures, the run manifest, and booster folders
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    PoolDir:  "./assets",
//	    OutDir:   "./out",
//	    Boosters: 24,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.SheetCount, "sheets written to", result.OutDir)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/packsmith/packsmith/pkg/booster"
	"github.com/packsmith/packsmith/pkg/errors"
	"github.com/packsmith/packsmith/pkg/sheet"
)

// DefaultBoosters is the standard booster count for a full draft run
// (8 players, 3 packs each).
const DefaultBoosters = 24

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options
	PoolDir string `json:"pool_dir"`

	// Assembly options
	Boosters int `json:"boosters,omitempty"`

	// MythicChance is the per-booster probability of upgrading the rare slot
	// to a mythic. Negative means the assembler default; zero disables the
	// upgrade entirely.
	MythicChance float64 `json:"mythic_chance,omitempty"`

	Seed         uint64  `json:"seed,omitempty"`
	Policy       string  `json:"policy,omitempty"`
	IncludeLands bool    `json:"include_lands,omitempty"`

	// Packing options
	Rows        int    `json:"rows,omitempty"`
	Cols        int    `json:"cols,omitempty"`
	CardWidth   int    `json:"card_width,omitempty"`
	CardHeight  int    `json:"card_height,omitempty"`
	Sort        string `json:"sort,omitempty"`
	ReserveBack bool   `json:"reserve_back,omitempty"`
	BackPath    string `json:"back_path,omitempty"`
	Workers     int    `json:"workers,omitempty"`

	// Export options
	OutDir        string `json:"out_dir"`
	Force         bool   `json:"force,omitempty"`
	WriteBoosters bool   `json:"write_boosters,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// PoolSize is the number of classified cards loaded.
	PoolSize int

	// BoosterCount is the number of boosters assembled (standard + land).
	BoosterCount int

	// SheetCount is the number of sheet textures written.
	SheetCount int

	// Skipped lists asset paths that failed to decode during composition.
	Skipped []string

	// LoadWarnings lists pool files that could not be classified.
	LoadWarnings []string

	// EmptyBuckets lists rarity or land buckets with no cards.
	EmptyBuckets []string

	// OutDir is the directory the run wrote to.
	OutDir string

	// Stats contains timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LoadTime     time.Duration
	AssembleTime time.Duration
	PackTime     time.Duration
	ExportTime   time.Duration
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.PoolDir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "pool directory is required")
	}
	if o.OutDir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "output directory is required")
	}
	if err := errors.ValidateBoosterCount(o.Boosters); err != nil {
		return err
	}
	if o.MythicChance >= 0 {
		if err := errors.ValidateChance(o.MythicChance); err != nil {
			return err
		}
	}
	if _, err := booster.ParsePolicy(o.Policy); err != nil {
		return err
	}
	if _, err := sheet.ParseSortMode(o.Sort); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// job builds the sheet job for this run. Grid and worker validation happens
// in the job's own ValidateAndSetDefaults.
func (o *Options) job() *sheet.Job {
	mode, _ := sheet.ParseSortMode(o.Sort)
	return &sheet.Job{
		Rows:        o.Rows,
		Cols:        o.Cols,
		CardWidth:   o.CardWidth,
		CardHeight:  o.CardHeight,
		Sort:        mode,
		ReserveBack: o.ReserveBack,
		BackPath:    o.BackPath,
		Workers:     o.Workers,
		Logger:      o.Logger,
	}
}

// assemblerOptions builds the booster assembler configuration for this run.
func (o *Options) assemblerOptions() booster.Options {
	policy, _ := booster.ParsePolicy(o.Policy)
	return booster.Options{
		MythicChance: o.MythicChance,
		Seed:         o.Seed,
		Policy:       policy,
		Logger:       o.Logger,
	}
}
