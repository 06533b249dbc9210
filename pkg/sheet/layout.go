package sheet

import (
	"sort"

	"github.com/packsmith/packsmith/pkg/pool"
)

// Cell is one occupied grid position on a sheet.
type Cell struct {
	Row, Col int
	Asset    *pool.CardAsset
}

// Sheet is the cell assignment for one composite image. Only occupied cells
// are listed; trailing cells on the last sheet stay blank. Sheets are created
// by Layout and never mutated afterwards.
type Sheet struct {
	Index int // 0-based sheet position in packing order
	Cells []Cell
}

// Occupied returns the number of occupied cells on the sheet.
func (s *Sheet) Occupied() int {
	return len(s.Cells)
}

// Layout assigns an ordered card sequence to grid sheets.
//
// Cards are placed row-major (left-to-right, then top-to-bottom) in input
// order, after the job's sort mode is applied. The result holds
// ceil(len(assets) / slots) sheets where slots is the per-sheet card
// capacity; every input asset lands in exactly one cell, duplicated only if
// the caller supplied it more than once.
func Layout(assets []*pool.CardAsset, job *Job) ([]Sheet, error) {
	if err := job.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	ordered := make([]*pool.CardAsset, len(assets))
	copy(ordered, assets)
	sortAssets(ordered, job.Sort)

	slots := job.CardSlots()
	sheetCount := (len(ordered) + slots - 1) / slots

	sheets := make([]Sheet, sheetCount)
	for i, a := range ordered {
		k := i / slots
		pos := i % slots
		sheets[k].Index = k
		sheets[k].Cells = append(sheets[k].Cells, Cell{
			Row:   pos / job.Cols,
			Col:   pos % job.Cols,
			Asset: a,
		})
	}
	return sheets, nil
}

// sortAssets orders assets in place according to the sort mode.
// The sort is stable so equal keys keep their input order.
func sortAssets(assets []*pool.CardAsset, mode SortMode) {
	switch mode {
	case SortName:
		sort.SliceStable(assets, func(i, j int) bool {
			return assets[i].Name < assets[j].Name
		})
	case SortRarity:
		sort.SliceStable(assets, func(i, j int) bool {
			if assets[i].Rarity != assets[j].Rarity {
				return assets[i].Rarity.Order() > assets[j].Rarity.Order()
			}
			return assets[i].Name < assets[j].Name
		})
	}
}
