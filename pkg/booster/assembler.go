package booster

import (
	"io"
	"math/rand"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/packsmith/packsmith/pkg/errors"
	"github.com/packsmith/packsmith/pkg/pool"
)

// Default values for assembler options.
const (
	// DefaultMythicChance is the probability that a booster's rare slot
	// holds a mythic instead of a rare.
	DefaultMythicChance = 1.0 / 8.0

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)
)

// Policy controls how cards repeat across boosters. Within one booster,
// draws are always without replacement.
type Policy string

const (
	// PolicyWithReplacement draws each booster independently from the full
	// bucket: a card may reappear in any later booster. This is the default.
	PolicyWithReplacement Policy = "with-replacement"

	// PolicyExhaustReshuffle cycles through a shuffled copy of each bucket,
	// reshuffling only when the bucket is exhausted, so the whole bucket is
	// seen before any card repeats across boosters.
	PolicyExhaustReshuffle Policy = "exhaust-reshuffle"
)

// ParsePolicy parses a sampling policy name. Underscores are accepted in
// place of hyphens, and "exhaust-then-reshuffle" is an alias. An empty string
// selects the default policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "", string(PolicyWithReplacement):
		return PolicyWithReplacement, nil
	case string(PolicyExhaustReshuffle), "exhaust-then-reshuffle":
		return PolicyExhaustReshuffle, nil
	}
	return "", errors.New(errors.ErrCodeInvalidPolicy,
		"unknown sampling policy %q (must be %q or %q)", s, PolicyWithReplacement, PolicyExhaustReshuffle)
}

// Options configures an Assembler.
type Options struct {
	// MythicChance is the per-booster probability of a mythic in the rare
	// slot. Negative means DefaultMythicChance; zero means never mythic.
	MythicChance float64

	// Seed drives all sampling. Zero means DefaultSeed.
	Seed uint64

	// Policy is the cross-booster sampling policy.
	// Empty means PolicyWithReplacement.
	Policy Policy

	// Logger receives debug output. Nil discards.
	Logger *log.Logger
}

// Assembler samples rarity-correct standard boosters from a pool.
// It is stateful (the seeded source, and the bucket queues under
// PolicyExhaustReshuffle live across Assemble calls) and not safe for
// concurrent use; the pool itself is never mutated.
type Assembler struct {
	pool   *pool.Pool
	opts   Options
	rng    *rand.Rand
	queues map[pool.Rarity][]*pool.CardAsset
	logger *log.Logger
}

// New creates an Assembler over the given pool.
func New(p *pool.Pool, opts Options) (*Assembler, error) {
	if opts.MythicChance < 0 {
		opts.MythicChance = DefaultMythicChance
	}
	if err := errors.ValidateChance(opts.MythicChance); err != nil {
		return nil, err
	}
	policy, err := ParsePolicy(string(opts.Policy))
	if err != nil {
		return nil, err
	}
	opts.Policy = policy
	if opts.Seed == 0 {
		opts.Seed = DefaultSeed
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return &Assembler{
		pool:   p,
		opts:   opts,
		rng:    rand.New(rand.NewSource(int64(opts.Seed))),
		queues: make(map[pool.Rarity][]*pool.CardAsset),
		logger: opts.Logger,
	}, nil
}

// Assemble produces n standard boosters. Each booster satisfies the slot
// rule (1 rare-or-mythic, 3 uncommon, 11 common) with no duplicate card
// within the booster. It fails with InsufficientCardsError if a required
// bucket is empty or smaller than its per-booster slot count.
func (a *Assembler) Assemble(n int) ([]*Booster, error) {
	if err := errors.ValidateBoosterCount(n); err != nil {
		return nil, err
	}

	boosters := make([]*Booster, 0, n)
	for i := 0; i < n; i++ {
		b, err := a.assembleOne()
		if err != nil {
			return nil, err
		}
		boosters = append(boosters, b)
	}
	return boosters, nil
}

// assembleOne builds a single booster, consuming the seed stream in a fixed
// order (mythic roll, then rare, uncommon, common draws) so output is
// deterministic for a given seed.
func (a *Assembler) assembleOne() (*Booster, error) {
	top := pool.RarityRare
	if a.rng.Float64() < a.opts.MythicChance {
		// The slot is rare-or-mythic: with no mythics in the pool the
		// roll falls back to rare rather than failing the booster.
		if len(a.pool.Bucket(pool.RarityMythic)) > 0 {
			top = pool.RarityMythic
		} else {
			a.logger.Debug("mythic roll fell back to rare", "reason", "empty mythic bucket")
		}
	}

	slots := []struct {
		rarity pool.Rarity
		count  int
	}{
		{top, SlotRareMythic},
		{pool.RarityUncommon, SlotUncommon},
		{pool.RarityCommon, SlotCommon},
	}

	cards := make([]*pool.CardAsset, 0, StandardSize)
	for _, slot := range slots {
		drawn, err := a.draw(slot.rarity, slot.count)
		if err != nil {
			return nil, err
		}
		cards = append(cards, drawn...)
	}

	return &Booster{Kind: KindStandard, Cards: cards}, nil
}

// draw samples count distinct cards from one rarity bucket according to the
// cross-booster policy.
func (a *Assembler) draw(r pool.Rarity, count int) ([]*pool.CardAsset, error) {
	bucket := a.pool.Bucket(r)
	if len(bucket) < count {
		return nil, &InsufficientCardsError{Bucket: r, Need: count, Have: len(bucket)}
	}

	if a.opts.Policy == PolicyExhaustReshuffle {
		return a.drawFromQueue(r, count), nil
	}

	perm := a.rng.Perm(len(bucket))
	out := make([]*pool.CardAsset, count)
	for i := range out {
		out[i] = bucket[perm[i]]
	}
	return out, nil
}

// drawFromQueue pops count distinct cards from the bucket's shuffled queue,
// refilling with a reshuffled copy of the bucket on exhaustion. A card popped
// twice for the same booster (possible across a cycle boundary) is deferred
// back to the queue front.
func (a *Assembler) drawFromQueue(r pool.Rarity, count int) []*pool.CardAsset {
	bucket := a.pool.Bucket(r)
	queue := a.queues[r]
	used := make(map[*pool.CardAsset]bool, count)

	out := make([]*pool.CardAsset, 0, count)
	var deferred []*pool.CardAsset
	for len(out) < count {
		if len(queue) == 0 {
			refill := make([]*pool.CardAsset, len(bucket))
			copy(refill, bucket)
			a.rng.Shuffle(len(refill), func(i, j int) {
				refill[i], refill[j] = refill[j], refill[i]
			})
			queue = refill
		}
		c := queue[0]
		queue = queue[1:]
		if used[c] {
			deferred = append(deferred, c)
			continue
		}
		used[c] = true
		out = append(out, c)
	}

	a.queues[r] = append(deferred, queue...)
	return out
}
