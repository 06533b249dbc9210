package cli

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/pkg/errors"
	"github.com/packsmith/packsmith/pkg/pipeline"
)

// DefaultConfigFile is the config file looked up in the working directory
// when --config is not given.
const DefaultConfigFile = "packsmith.toml"

// fileConfig mirrors the packsmith.toml shape. Fields that have a meaningful
// zero value (mythic_chance, booleans) are pointers so an absent key can be
// told apart from an explicit zero.
type fileConfig struct {
	Boosters     int      `toml:"boosters"`
	Seed         uint64   `toml:"seed"`
	MythicChance *float64 `toml:"mythic_chance"`
	Policy       string   `toml:"policy"`
	IncludeLands *bool    `toml:"include_lands"`

	Rows        int    `toml:"rows"`
	Cols        int    `toml:"cols"`
	CardWidth   int    `toml:"card_width"`
	CardHeight  int    `toml:"card_height"`
	Sort        string `toml:"sort"`
	ReserveBack *bool  `toml:"reserve_back"`
	Back        string `toml:"back"`
	Workers     int    `toml:"workers"`
}

// loadConfig reads a TOML config file. When the path is the implicit default
// and the file does not exist, an empty config is returned; an explicitly
// named file must exist.
func loadConfig(path string, explicit bool) (*fileConfig, error) {
	cfg := &fileConfig{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "config file %s not found", path)
		}
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, nil
}

// applyConfig overlays config file values onto pipeline options for every
// flag the user did not set on the command line. Precedence is
// flag > config file > built-in default.
func applyConfig(cmd *cobra.Command, cfg *fileConfig, opts *pipeline.Options) {
	changed := cmd.Flags().Changed

	if !changed("boosters") && cfg.Boosters != 0 {
		opts.Boosters = cfg.Boosters
	}
	if !changed("seed") && cfg.Seed != 0 {
		opts.Seed = cfg.Seed
	}
	if !changed("mythic-chance") && cfg.MythicChance != nil {
		opts.MythicChance = *cfg.MythicChance
	}
	if !changed("policy") && cfg.Policy != "" {
		opts.Policy = cfg.Policy
	}
	if !changed("lands") && cfg.IncludeLands != nil {
		opts.IncludeLands = *cfg.IncludeLands
	}
	if !changed("rows") && cfg.Rows != 0 {
		opts.Rows = cfg.Rows
	}
	if !changed("cols") && cfg.Cols != 0 {
		opts.Cols = cfg.Cols
	}
	if !changed("card-width") && cfg.CardWidth != 0 {
		opts.CardWidth = cfg.CardWidth
	}
	if !changed("card-height") && cfg.CardHeight != 0 {
		opts.CardHeight = cfg.CardHeight
	}
	if !changed("sort") && cfg.Sort != "" {
		opts.Sort = cfg.Sort
	}
	if !changed("back") && cfg.ReserveBack != nil {
		opts.ReserveBack = *cfg.ReserveBack
	}
	if !changed("back-image") && cfg.Back != "" {
		opts.BackPath = cfg.Back
	}
	if !changed("workers") && cfg.Workers != 0 {
		opts.Workers = cfg.Workers
	}
}
