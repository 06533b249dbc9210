// Package sheet packs ordered card image sequences into fixed-capacity grid
// sheets and composes them into textures for a virtual tabletop's custom-deck
// import.
//
// Packing is pagination, not bin-packing: cell assignment is purely
// sequential (row-major over a fixed rows x columns page), so the layout is
// O(N) and fully deterministic given the (sorted) input order. Cell
// assignment is computed up front by Layout; Compose then renders the sheets,
// fanning out across workers because sheets share no mutable state.
package sheet

import (
	"io"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/packsmith/packsmith/pkg/errors"
)

// Default grid and cell dimensions.
//
// 7x10 is Tabletop Simulator's maximum custom-deck grid; 409x585 keeps a full
// sheet (4090x4095) just inside the platform's 4096px texture ceiling. The
// ceiling is a documented configuration constraint, not something the packer
// enforces beyond accepting the configured grid.
const (
	DefaultRows       = 7
	DefaultCols       = 10
	DefaultCardWidth  = 409
	DefaultCardHeight = 585

	// TextureCeiling is the importing platform's maximum texture edge.
	TextureCeiling = 4096
)

// SortMode orders the input sequence before cell assignment.
type SortMode string

const (
	// SortNone keeps the caller's input order.
	SortNone SortMode = "none"

	// SortName orders cards by name.
	SortName SortMode = "name"

	// SortRarity orders cards by rarity (mythic first), then by name.
	SortRarity SortMode = "rarity"
)

// ParseSortMode parses a sort mode name. An empty string selects SortNone;
// "rarity-then-name" is accepted as an alias for SortRarity.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "", string(SortNone):
		return SortNone, nil
	case string(SortName):
		return SortName, nil
	case string(SortRarity), "rarity-then-name":
		return SortRarity, nil
	}
	return "", errors.New(errors.ErrCodeInvalidSortMode,
		"unknown sort mode %q (must be %q, %q, or %q)", s, SortNone, SortName, SortRarity)
}

// Job is the configuration for one packing run.
type Job struct {
	// Rows and Cols define the sheet grid. Zero means the default.
	Rows, Cols int

	// CardWidth and CardHeight are the per-card pixel dimensions of a cell.
	// Zero means the default.
	CardWidth, CardHeight int

	// Sort orders the input before cell assignment.
	Sort SortMode

	// ReserveBack reserves the last cell of every sheet for a card back
	// (the cell Tabletop Simulator reads the deck back from). BackPath
	// names the back image; empty generates a neutral back.
	ReserveBack bool
	BackPath    string

	// Workers bounds the render fan-out. Zero means GOMAXPROCS.
	Workers int

	// Logger receives per-asset read failures. Nil discards.
	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks the job configuration and applies defaults.
// Configuration errors are fatal: they indicate a mistake, not bad input data.
// The method is idempotent.
func (j *Job) ValidateAndSetDefaults() error {
	if j.validated {
		return nil
	}
	if j.Rows == 0 {
		j.Rows = DefaultRows
	}
	if j.Cols == 0 {
		j.Cols = DefaultCols
	}
	if j.CardWidth == 0 {
		j.CardWidth = DefaultCardWidth
	}
	if j.CardHeight == 0 {
		j.CardHeight = DefaultCardHeight
	}
	if err := errors.ValidateGrid(j.Rows, j.Cols); err != nil {
		return err
	}
	if err := errors.ValidateCardSize(j.CardWidth, j.CardHeight); err != nil {
		return err
	}
	if err := errors.ValidateWorkers(j.Workers); err != nil {
		return err
	}
	sort, err := ParseSortMode(string(j.Sort))
	if err != nil {
		return err
	}
	j.Sort = sort
	if j.ReserveBack && j.Capacity() < 2 {
		return errors.New(errors.ErrCodeInvalidGrid,
			"grid %dx%d cannot reserve a back cell and still hold cards", j.Rows, j.Cols)
	}
	if j.Workers == 0 {
		j.Workers = runtime.GOMAXPROCS(0)
	}
	if j.Logger == nil {
		j.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	j.validated = true
	return nil
}

// Capacity returns the cell count of one sheet (rows x columns).
func (j *Job) Capacity() int {
	return j.Rows * j.Cols
}

// CardSlots returns the cells per sheet available to input cards:
// the capacity, minus one when a back cell is reserved.
func (j *Job) CardSlots() int {
	if j.ReserveBack {
		return j.Capacity() - 1
	}
	return j.Capacity()
}
