package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/packsmith/packsmith/pkg/booster"
	"github.com/packsmith/packsmith/pkg/export"
	"github.com/packsmith/packsmith/pkg/pool"
	"github.com/packsmith/packsmith/pkg/sheet"
)

// Runner executes the load → assemble → pack → export pipeline.
//
// The Runner is stateless except for its logger - it doesn't store run
// results. Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger uses the default logger.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete pipeline.
//
// The run aborts on configuration errors, an unloadable pool, insufficient
// cards, or a pre-existing non-empty output directory (without Force).
// Per-file problems - unclassifiable pool entries, undecodable card images -
// are reported in the Result and logged, but do not abort.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{OutDir: opts.OutDir}

	// Stage 1: Load
	loadStart := time.Now()
	p, report, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.PoolSize = p.Size()
	result.EmptyBuckets = report.EmptyBuckets
	for _, le := range report.Errors {
		result.LoadWarnings = append(result.LoadWarnings, le.Error())
	}

	r.Logger.Info("loaded pool",
		"dir", opts.PoolDir,
		"cards", p.Size(),
		"warnings", len(report.Errors),
		"duration", result.Stats.LoadTime)

	// Stage 2: Assemble
	assembleStart := time.Now()
	boosters, err := r.Assemble(ctx, p, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.AssembleTime = time.Since(assembleStart)
	result.BoosterCount = len(boosters)

	r.Logger.Info("assembled boosters",
		"count", len(boosters),
		"seed", opts.Seed,
		"duration", result.Stats.AssembleTime)

	// Stage 3: Pack
	packStart := time.Now()
	job := opts.job()
	rendered, err := r.Pack(ctx, flatten(boosters), job)
	if err != nil {
		return nil, err
	}
	result.Stats.PackTime = time.Since(packStart)
	result.SheetCount = len(rendered)
	for _, sh := range rendered {
		for _, s := range sh.Skipped {
			result.Skipped = append(result.Skipped, s.Path)
		}
	}

	r.Logger.Info("packed sheets",
		"sheets", len(rendered),
		"skipped", len(result.Skipped),
		"duration", result.Stats.PackTime)

	// Stage 4: Export
	exportStart := time.Now()
	if err := r.Export(ctx, rendered, boosters, job, opts); err != nil {
		return nil, err
	}
	result.Stats.ExportTime = time.Since(exportStart)

	r.Logger.Info("wrote output",
		"dir", opts.OutDir,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// Load scans the pool directory into a classified card pool.
func (r *Runner) Load(ctx context.Context, opts Options) (*pool.Pool, *pool.Report, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	p, report, err := pool.Load(opts.PoolDir)
	if err != nil {
		return nil, nil, err
	}
	for _, le := range report.Errors {
		opts.Logger.Warn("unclassified pool entry", "file", le.File, "reason", le.Reason)
	}
	for _, b := range report.EmptyBuckets {
		opts.Logger.Warn("empty pool bucket", "bucket", b)
	}
	return p, report, nil
}

// Assemble builds the run's boosters: the configured number of standard
// boosters in assembly order, then land boosters in WUBRG type order when
// enabled.
func (r *Runner) Assemble(ctx context.Context, p *pool.Pool, opts Options) ([]*booster.Booster, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var boosters []*booster.Booster
	if opts.Boosters > 0 {
		asm, err := booster.New(p, opts.assemblerOptions())
		if err != nil {
			return nil, err
		}
		standard, err := asm.Assemble(opts.Boosters)
		if err != nil {
			return nil, err
		}
		boosters = append(boosters, standard...)
	}

	if opts.IncludeLands {
		lands := booster.Lands(p)
		for _, t := range pool.LandTypes {
			if b, ok := lands[t]; ok {
				boosters = append(boosters, b)
			}
		}
	}
	return boosters, nil
}

// Pack lays the boosters' card sequence onto grid sheets and composes the
// textures.
func (r *Runner) Pack(ctx context.Context, cards []*pool.CardAsset, job *sheet.Job) ([]*sheet.Rendered, error) {
	sheets, err := sheet.Layout(cards, job)
	if err != nil {
		return nil, err
	}
	return sheet.Compose(ctx, sheets, job)
}

// Export prepares the output directory and writes sheets, the manifest, and
// (when enabled) per-booster folders.
func (r *Runner) Export(ctx context.Context, rendered []*sheet.Rendered, boosters []*booster.Booster, job *sheet.Job, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := export.PrepareDir(opts.OutDir, opts.Force); err != nil {
		return err
	}
	if _, err := export.WriteSheets(opts.OutDir, rendered, job); err != nil {
		return err
	}
	if opts.WriteBoosters {
		if err := export.WriteBoosters(opts.OutDir, boosters); err != nil {
			return err
		}
	}
	return nil
}

// flatten concatenates booster contents into the single card sequence the
// packer consumes, preserving booster order and within-booster slot order.
func flatten(boosters []*booster.Booster) []*pool.CardAsset {
	var cards []*pool.CardAsset
	for _, b := range boosters {
		cards = append(cards, b.Cards...)
	}
	return cards
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
