package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/pkg/pool"
)

// newPoolCmd creates the pool command for inspecting a card pool directory.
func newPoolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pool <dir>",
		Short: "Inspect a card pool directory and report bucket sizes",
		Long: `Inspect a card pool directory and report bucket sizes.

The command loads every card image and its metadata sidecar, classifies the
cards into rarity and basic-land buckets, and prints a summary. Files with
missing or malformed metadata are listed as warnings but do not fail the
command.

Examples:
  packsmith pool ./assets
  packsmith pool ./assets -v`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPool(cmd, args[0])
		},
	}
}

func runPool(cmd *cobra.Command, dir string) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	p, report, err := pool.Load(dir)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %d cards", p.Size()))

	fmt.Println(StyleTitle.Render("Pool " + dir))
	printKeyValue("cards", fmt.Sprintf("%d", p.Size()))
	for _, r := range pool.Rarities {
		printKeyValue(string(r), fmt.Sprintf("%d", len(p.Bucket(r))))
	}
	for _, t := range p.PresentLandTypes() {
		printKeyValue("land "+string(t), fmt.Sprintf("%d variants", len(p.LandVariants(t))))
	}

	if report.HasWarnings() {
		for _, le := range report.Errors {
			printWarning("%s", le.Error())
		}
		for _, b := range report.EmptyBuckets {
			printDetail("empty bucket: %s", b)
		}
	} else {
		printSuccess("All cards classified")
	}
	return nil
}
