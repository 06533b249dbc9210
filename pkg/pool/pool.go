// Package pool loads a directory of rendered card images into a classified
// card pool.
//
// Each card image is accompanied by a metadata sidecar (<name>.json) written by
// the set generator. The loader validates the loose sidecar data into a fixed
// CardAsset shape at load time, partitions the assets into rarity buckets and
// basic-land buckets, and reports per-file problems without aborting the run.
//
// A Pool is built once per run and is read-only afterwards; both the booster
// assembler and the land booster generator share the same Pool value.
package pool

import (
	"fmt"
	"sort"
	"strings"

	"github.com/packsmith/packsmith/pkg/errors"
)

// Rarity is a card rarity tier.
type Rarity string

// Rarity tiers, lowest to highest.
const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
	RarityMythic   Rarity = "mythic"
)

// Rarities lists all tiers in ascending order.
var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityMythic}

// rarityOrder maps each tier to its sort position.
var rarityOrder = map[Rarity]int{
	RarityCommon:   0,
	RarityUncommon: 1,
	RarityRare:     2,
	RarityMythic:   3,
}

// Order returns the tier's position in ascending rarity order.
// Unknown rarities sort after mythic.
func (r Rarity) Order() int {
	if o, ok := rarityOrder[r]; ok {
		return o
	}
	return len(rarityOrder)
}

// ParseRarity parses a rarity string case-insensitively.
// "Mythic Rare" (the set generator's spelling) is accepted as mythic.
func ParseRarity(s string) (Rarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "common":
		return RarityCommon, nil
	case "uncommon":
		return RarityUncommon, nil
	case "rare":
		return RarityRare, nil
	case "mythic", "mythic rare":
		return RarityMythic, nil
	}
	return "", errors.New(errors.ErrCodePoolLoad, "unknown rarity %q", s)
}

// LandType is one of the five basic land types.
type LandType string

// Basic land types in canonical (WUBRG) order.
const (
	LandPlains   LandType = "Plains"
	LandIsland   LandType = "Island"
	LandSwamp    LandType = "Swamp"
	LandMountain LandType = "Mountain"
	LandForest   LandType = "Forest"
)

// LandTypes lists the basic land types in canonical order.
var LandTypes = []LandType{LandPlains, LandIsland, LandSwamp, LandMountain, LandForest}

// landColors maps each land type to its mana color letter.
var landColors = map[LandType]string{
	LandPlains:   "W",
	LandIsland:   "U",
	LandSwamp:    "B",
	LandMountain: "R",
	LandForest:   "G",
}

// Color returns the mana color letter for the land type (W/U/B/R/G).
func (t LandType) Color() string {
	return landColors[t]
}

// ParseLandType matches a basic land type name case-insensitively.
func ParseLandType(s string) (LandType, bool) {
	for _, t := range LandTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, true
		}
	}
	return "", false
}

// CardAsset is a rendered card image plus its classification metadata.
// Assets are immutable once loaded and owned by the Pool.
type CardAsset struct {
	Name            string   // card name, e.g. "Forest 2"
	ImagePath       string   // absolute or dir-relative path to the image file
	Rarity          Rarity   // empty for assets loaded without a sidecar
	Colors          []string // color identity letters (W/U/B/R/G)
	CollectorNumber string
	IsBasicLand     bool
	LandType        LandType // set only when IsBasicLand
	Variant         int      // art variant index, unique within a land type
}

// Pool is the full classified card set for one generated run.
// It is read-only after construction.
type Pool struct {
	assets   []*CardAsset
	byRarity map[Rarity][]*CardAsset
	byLand   map[LandType][]*CardAsset
}

// New builds a Pool from already-validated assets.
// It partitions non-land assets by rarity and basic lands by land type,
// ordering land variants by variant index. Duplicate variant indexes within a
// land type violate the pool invariant and fail construction.
func New(assets []*CardAsset) (*Pool, error) {
	p := &Pool{
		assets:   assets,
		byRarity: make(map[Rarity][]*CardAsset),
		byLand:   make(map[LandType][]*CardAsset),
	}

	for _, a := range assets {
		if a.IsBasicLand {
			if _, ok := landColors[a.LandType]; !ok {
				return nil, errors.New(errors.ErrCodePoolLoad, "%s: unknown land type %q", a.Name, a.LandType)
			}
			p.byLand[a.LandType] = append(p.byLand[a.LandType], a)
			continue
		}
		if _, ok := rarityOrder[a.Rarity]; !ok {
			return nil, errors.New(errors.ErrCodePoolLoad, "%s: missing or unknown rarity %q", a.Name, a.Rarity)
		}
		p.byRarity[a.Rarity] = append(p.byRarity[a.Rarity], a)
	}

	for t, variants := range p.byLand {
		sort.Slice(variants, func(i, j int) bool { return variants[i].Variant < variants[j].Variant })
		for i := 1; i < len(variants); i++ {
			if variants[i].Variant == variants[i-1].Variant {
				return nil, errors.New(errors.ErrCodePoolLoad,
					"duplicate %s variant %d (%s and %s)",
					t, variants[i].Variant, variants[i-1].Name, variants[i].Name)
			}
		}
	}

	return p, nil
}

// Size returns the total number of assets in the pool, lands included.
func (p *Pool) Size() int {
	return len(p.assets)
}

// Assets returns all assets in load order.
// The returned slice must not be modified.
func (p *Pool) Assets() []*CardAsset {
	return p.assets
}

// Bucket returns the assets of one rarity tier, in load order.
// The returned slice must not be modified.
func (p *Pool) Bucket(r Rarity) []*CardAsset {
	return p.byRarity[r]
}

// LandVariants returns all art variants of one basic land type, in
// variant-index order. The returned slice must not be modified.
func (p *Pool) LandVariants(t LandType) []*CardAsset {
	return p.byLand[t]
}

// PresentLandTypes returns the land types that have at least one variant,
// in canonical WUBRG order.
func (p *Pool) PresentLandTypes() []LandType {
	var present []LandType
	for _, t := range LandTypes {
		if len(p.byLand[t]) > 0 {
			present = append(present, t)
		}
	}
	return present
}

// String summarizes the pool's bucket sizes for logging.
func (p *Pool) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d cards", len(p.assets))
	for _, r := range Rarities {
		fmt.Fprintf(&b, ", %d %s", len(p.byRarity[r]), r)
	}
	lands := 0
	for _, v := range p.byLand {
		lands += len(v)
	}
	fmt.Fprintf(&b, ", %d lands", lands)
	return b.String()
}
