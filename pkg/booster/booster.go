// Package booster assembles draft boosters from a classified card pool.
//
// Standard boosters follow the 15-card slot rule: one rare-or-mythic, three
// uncommons, eleven commons. Land boosters are deterministic: one booster per
// basic land type, containing every art variant of that type in variant order.
//
// Assembly is seed-controlled. Given the same pool, seed, and sampling policy,
// two runs produce identical booster sequences.
package booster

import (
	"fmt"

	"github.com/packsmith/packsmith/pkg/pool"
)

// Kind distinguishes standard draft boosters from all-variant land boosters.
type Kind string

const (
	// KindStandard is a 15-card rarity-correct draft booster.
	KindStandard Kind = "standard"

	// KindLand is a deterministic booster holding every art variant of one
	// basic land type.
	KindLand Kind = "land"
)

// Slot counts for a standard draft booster.
const (
	SlotRareMythic = 1
	SlotUncommon   = 3
	SlotCommon     = 11

	// StandardSize is the card count of a standard booster.
	StandardSize = SlotRareMythic + SlotUncommon + SlotCommon
)

// Booster is an ordered, immutable sequence of cards.
// Standard boosters hold exactly StandardSize cards ordered rare/mythic first,
// then uncommons, then commons, in draw order. Land boosters hold all variants
// of LandType in variant-index order.
type Booster struct {
	Kind     Kind
	LandType pool.LandType // set only for KindLand
	Cards    []*pool.CardAsset
}

// Label returns a short human-readable identifier for folder naming and logs,
// e.g. "standard" or "land_Forest".
func (b *Booster) Label() string {
	if b.Kind == KindLand {
		return "land_" + string(b.LandType)
	}
	return string(KindStandard)
}

// InsufficientCardsError reports that a rarity bucket cannot satisfy a draw:
// either it is empty, or it is smaller than one booster's slot count for that
// rarity (within-booster draws are without replacement).
type InsufficientCardsError struct {
	Bucket pool.Rarity
	Need   int // cards required for one booster
	Have   int // cards available in the bucket
}

// Error implements the error interface.
func (e *InsufficientCardsError) Error() string {
	return fmt.Sprintf("insufficient cards in %s bucket: need %d per booster, have %d", e.Bucket, e.Need, e.Have)
}

// Lands builds one all-variant booster per basic land type present in the
// pool, keyed by land type. Types with zero variants are skipped. No
// randomness, no duplicates, no omissions: the booster's cards are exactly
// the pool's variants for that type, in variant-index order.
func Lands(p *pool.Pool) map[pool.LandType]*Booster {
	out := make(map[pool.LandType]*Booster)
	for _, t := range p.PresentLandTypes() {
		variants := p.LandVariants(t)
		cards := make([]*pool.CardAsset, len(variants))
		copy(cards, variants)
		out[t] = &Booster{Kind: KindLand, LandType: t, Cards: cards}
	}
	return out
}
