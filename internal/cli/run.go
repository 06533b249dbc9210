package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/pkg/booster"
	"github.com/packsmith/packsmith/pkg/pipeline"
)

// newRunCmd creates the run command for the full pool-to-sheets pipeline.
func newRunCmd() *cobra.Command {
	var (
		configPath string
		out        string
		force      bool
	)
	opts := pipeline.Options{
		Boosters:     pipeline.DefaultBoosters,
		MythicChance: booster.DefaultMythicChance,
	}

	cmd := &cobra.Command{
		Use:   "run <pool-dir>",
		Short: "Run the full load, assemble, pack, export pipeline",
		Long: `Run the full pipeline: load a card pool, assemble draft boosters, pack
the booster cards onto grid sheets, and write the sheet textures with a run
manifest.

With --write-boosters the individual boosters are also materialized as
folders next to the sheets. Runs are reproducible: the same pool, seed, and
policy always produce the same output.

Examples:
  packsmith run ./assets -o ./out
  packsmith run ./assets -o ./out -n 36 --lands --write-boosters
  packsmith run ./assets -o ./out --seed 7 --policy exhaust-reshuffle --force`,
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
			return runRun(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", DefaultConfigFile, "config file")
	cmd.Flags().StringVarP(&out, "out", "o", "out", "output directory")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite a non-empty output directory")
	cmd.Flags().IntVarP(&opts.Boosters, "boosters", "n", opts.Boosters, "number of standard boosters")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", booster.DefaultSeed, "random seed")
	cmd.Flags().Float64Var(&opts.MythicChance, "mythic-chance", opts.MythicChance, "probability of upgrading the rare slot to a mythic")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "sampling policy: with-replacement (default), exhaust-reshuffle")
	cmd.Flags().BoolVar(&opts.IncludeLands, "lands", false, "also build one all-variant booster per basic land type")
	cmd.Flags().BoolVar(&opts.WriteBoosters, "write-boosters", false, "also write per-booster folders")
	addSheetFlags(cmd, &opts)

	return cmd
}

func runRun(cmd *cobra.Command, opts pipeline.Options) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	prog := newProgress(logger)
	result, err := pipeline.NewRunner(logger).Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Packed %d boosters onto %d sheets", result.BoosterCount, result.SheetCount))

	printSuccess("Run complete")
	printFile(result.OutDir)
	printStats(
		fmt.Sprintf("%d cards", result.PoolSize),
		fmt.Sprintf("%d boosters", result.BoosterCount),
		fmt.Sprintf("%d sheets", result.SheetCount),
		fmt.Sprintf("seed %d", opts.Seed),
	)

	for _, w := range result.LoadWarnings {
		printWarning("%s", w)
	}
	if len(result.Skipped) > 0 {
		printWarning("%d card images could not be read (cells left blank)", len(result.Skipped))
	}
	for _, b := range result.EmptyBuckets {
		printDetail("empty bucket: %s", b)
	}
	return nil
}
