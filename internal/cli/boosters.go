package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/pkg/booster"
	"github.com/packsmith/packsmith/pkg/export"
	"github.com/packsmith/packsmith/pkg/pipeline"
)

// newBoostersCmd creates the boosters command for assembling draft boosters
// into folders without packing sheets.
func newBoostersCmd() *cobra.Command {
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
		Use:   "boosters <pool-dir>",
		Short: "Assemble draft boosters and write them as folders",
		Long: `Assemble draft boosters from a card pool and write each booster as a
folder of position-prefixed card image copies.

Standard boosters follow the 15-card slot rule: one rare or mythic, three
uncommons, eleven commons. With --lands, one additional booster per basic
land type holds every art variant of that type. Runs are reproducible: the
same pool, seed, and policy always produce the same boosters.

Examples:
  packsmith boosters ./assets -o ./boosters
  packsmith boosters ./assets -o ./boosters -n 36 --seed 7 --lands`,
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
			return runBoosters(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", DefaultConfigFile, "config file")
	cmd.Flags().StringVarP(&out, "out", "o", "boosters", "output directory")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite a non-empty output directory")
	cmd.Flags().IntVarP(&opts.Boosters, "boosters", "n", opts.Boosters, "number of standard boosters")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", booster.DefaultSeed, "random seed")
	cmd.Flags().Float64Var(&opts.MythicChance, "mythic-chance", opts.MythicChance, "probability of upgrading the rare slot to a mythic")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "sampling policy: with-replacement (default), exhaust-reshuffle")
	cmd.Flags().BoolVar(&opts.IncludeLands, "lands", false, "also build one all-variant booster per basic land type")

	return cmd
}

func runBoosters(cmd *cobra.Command, opts pipeline.Options) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := pipeline.NewRunner(logger)

	p, _, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	boosters, err := runner.Assemble(ctx, p, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Assembled %d boosters", len(boosters)))

	if err := export.PrepareDir(opts.OutDir, opts.Force); err != nil {
		return err
	}
	if err := export.WriteBoosters(opts.OutDir, boosters); err != nil {
		return err
	}

	printSuccess("Wrote %d boosters", len(boosters))
	printFile(opts.OutDir)
	printStats(
		fmt.Sprintf("%d boosters", len(boosters)),
		fmt.Sprintf("seed %d", opts.Seed),
	)
	return nil
}
