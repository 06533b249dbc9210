package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/pkg/pipeline"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "packsmith.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
boosters = 36
seed = 7
mythic_chance = 0.25
policy = "exhaust-reshuffle"
include_lands = true
rows = 5
cols = 6
sort = "rarity"
reserve_back = true
back = "back.png"
`)

	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Boosters != 36 || cfg.Seed != 7 {
		t.Errorf("boosters/seed = %d/%d, want 36/7", cfg.Boosters, cfg.Seed)
	}
	if cfg.MythicChance == nil || *cfg.MythicChance != 0.25 {
		t.Errorf("mythic_chance = %v, want 0.25", cfg.MythicChance)
	}
	if cfg.Policy != "exhaust-reshuffle" || cfg.Sort != "rarity" {
		t.Errorf("policy/sort = %q/%q", cfg.Policy, cfg.Sort)
	}
	if cfg.IncludeLands == nil || !*cfg.IncludeLands {
		t.Error("include_lands not parsed")
	}
	if cfg.ReserveBack == nil || !*cfg.ReserveBack {
		t.Error("reserve_back not parsed")
	}
	if cfg.Rows != 5 || cfg.Cols != 6 || cfg.Back != "back.png" {
		t.Errorf("rows/cols/back = %d/%d/%q", cfg.Rows, cfg.Cols, cfg.Back)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	// Implicit default path: missing file is fine.
	cfg, err := loadConfig(missing, false)
	if err != nil {
		t.Fatalf("implicit missing config should not error: %v", err)
	}
	if cfg.Boosters != 0 {
		t.Errorf("empty config has boosters = %d", cfg.Boosters)
	}

	// Explicitly named file must exist.
	if _, err := loadConfig(missing, true); err == nil {
		t.Error("explicit missing config should error")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, "boosters = [not toml")
	if _, err := loadConfig(path, true); err == nil {
		t.Error("expected error for malformed config")
	}
}

// testFlagCmd builds a command carrying the shared flag set so Changed()
// reflects what a user passed.
func testFlagCmd(opts *pipeline.Options, args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	cmd.Flags().IntVarP(&opts.Boosters, "boosters", "n", opts.Boosters, "")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 42, "")
	cmd.Flags().Float64Var(&opts.MythicChance, "mythic-chance", opts.MythicChance, "")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "")
	cmd.Flags().BoolVar(&opts.IncludeLands, "lands", false, "")
	addSheetFlags(cmd, opts)
	cmd.SetArgs(args)
	return cmd
}

func TestApplyConfigPrecedence(t *testing.T) {
	lands := true
	cfg := &fileConfig{
		Boosters:     36,
		Seed:         7,
		Rows:         5,
		IncludeLands: &lands,
	}

	// --boosters on the command line beats the config file; everything else
	// falls through to config values.
	opts := pipeline.Options{Boosters: 24}
	cmd := testFlagCmd(&opts, "--boosters", "12")
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	applyConfig(cmd, cfg, &opts)

	if opts.Boosters != 12 {
		t.Errorf("boosters = %d, want flag value 12", opts.Boosters)
	}
	if opts.Seed != 7 {
		t.Errorf("seed = %d, want config value 7", opts.Seed)
	}
	if opts.Rows != 5 {
		t.Errorf("rows = %d, want config value 5", opts.Rows)
	}
	if !opts.IncludeLands {
		t.Error("include_lands from config not applied")
	}
}

func TestApplyConfigEmpty(t *testing.T) {
	// An empty config changes nothing: built-in defaults survive.
	opts := pipeline.Options{Boosters: 24}
	cmd := testFlagCmd(&opts)
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	applyConfig(cmd, &fileConfig{}, &opts)

	if opts.Boosters != 24 || opts.Seed != 42 {
		t.Errorf("boosters/seed = %d/%d, want defaults 24/42", opts.Boosters, opts.Seed)
	}
	if opts.Rows != 0 || opts.Sort != "" {
		t.Errorf("rows/sort = %d/%q, want zero values", opts.Rows, opts.Sort)
	}
}
