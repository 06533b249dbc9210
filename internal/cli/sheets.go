package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/pkg/export"
	"github.com/packsmith/packsmith/pkg/pipeline"
	"github.com/packsmith/packsmith/pkg/pool"
	"github.com/packsmith/packsmith/pkg/sheet"
)

// newSheetsCmd creates the sheets command for packing a directory of card
// images into deck sheet textures without booster assembly.
func newSheetsCmd() *cobra.Command {
	var (
		configPath string
		out        string
		force      bool
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "sheets <dir>",
		Short: "Pack a directory of card images into deck sheet textures",
		Long: `Pack a directory of card images into fixed-grid deck sheet textures.

Cards are placed row-major in name order (or per --sort) onto sheets of the
configured grid, and a manifest.json describing the layout is written next to
the textures. Metadata sidecars are optional here: any directory of card
images can be packed.

The default 7x10 grid at 409x585 per card fills a sheet to 4090x4095 pixels,
just inside the common 4096px texture ceiling.

Examples:
  packsmith sheets ./cards -o ./sheets
  packsmith sheets ./cards -o ./sheets --sort rarity --back`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.PoolDir = args[0]
			opts.OutDir = out
			opts.Force = force

			cfg, err := loadConfig(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			applyConfig(cmd, cfg, &opts)
			return runSheets(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", DefaultConfigFile, "config file")
	cmd.Flags().StringVarP(&out, "out", "o", "sheets", "output directory")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite a non-empty output directory")
	addSheetFlags(cmd, &opts)

	return cmd
}

// addSheetFlags registers the grid and composition flags shared by the sheets
// and run commands.
func addSheetFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().IntVar(&opts.Rows, "rows", 0, fmt.Sprintf("sheet grid rows (default %d)", sheet.DefaultRows))
	cmd.Flags().IntVar(&opts.Cols, "cols", 0, fmt.Sprintf("sheet grid columns (default %d)", sheet.DefaultCols))
	cmd.Flags().IntVar(&opts.CardWidth, "card-width", 0, fmt.Sprintf("card cell width in pixels (default %d)", sheet.DefaultCardWidth))
	cmd.Flags().IntVar(&opts.CardHeight, "card-height", 0, fmt.Sprintf("card cell height in pixels (default %d)", sheet.DefaultCardHeight))
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "card order: none (default), name, rarity")
	cmd.Flags().BoolVar(&opts.ReserveBack, "back", false, "reserve the last cell of each sheet for a card back")
	cmd.Flags().StringVar(&opts.BackPath, "back-image", "", "card back image (generated if empty)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel composition workers (default GOMAXPROCS)")
}

func runSheets(cmd *cobra.Command, opts pipeline.Options) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	cards, err := pool.Scan(opts.PoolDir)
	if err != nil {
		return err
	}
	logger.Info("scanned card images", "dir", opts.PoolDir, "cards", len(cards))

	prog := newProgress(logger)
	job := &sheet.Job{
		Rows:        opts.Rows,
		Cols:        opts.Cols,
		CardWidth:   opts.CardWidth,
		CardHeight:  opts.CardHeight,
		ReserveBack: opts.ReserveBack,
		BackPath:    opts.BackPath,
		Workers:     opts.Workers,
		Logger:      logger,
	}
	if job.Sort, err = sheet.ParseSortMode(opts.Sort); err != nil {
		return err
	}

	rendered, err := pipeline.NewRunner(logger).Pack(ctx, cards, job)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Packed %d sheets", len(rendered)))

	if err := export.PrepareDir(opts.OutDir, opts.Force); err != nil {
		return err
	}
	m, err := export.WriteSheets(opts.OutDir, rendered, job)
	if err != nil {
		return err
	}

	skipped := 0
	for _, s := range m.Sheets {
		skipped += len(s.Skipped)
	}
	printSuccess("Wrote %d sheets", m.SheetCount)
	printFile(opts.OutDir)
	printStats(
		fmt.Sprintf("%d cards", len(cards)),
		fmt.Sprintf("%dx%d grid", job.Rows, job.Cols),
		fmt.Sprintf("%d skipped", skipped),
	)
	if skipped > 0 {
		printWarning("%d card images could not be read (cells left blank)", skipped)
	}
	return nil
}
