package booster

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/packsmith/packsmith/pkg/pool"
)

// makePool builds a synthetic pool with the given bucket sizes.
func makePool(t *testing.T, commons, uncommons, rares, mythics int) *pool.Pool {
	t.Helper()
	var assets []*pool.CardAsset
	add := func(r pool.Rarity, n int) {
		for i := 1; i <= n; i++ {
			assets = append(assets, &pool.CardAsset{
				Name:      fmt.Sprintf("%s %d", r, i),
				ImagePath: fmt.Sprintf("%s_%d.png", r, i),
				Rarity:    r,
			})
		}
	}
	add(pool.RarityCommon, commons)
	add(pool.RarityUncommon, uncommons)
	add(pool.RarityRare, rares)
	add(pool.RarityMythic, mythics)

	p, err := pool.New(assets)
	if err != nil {
		t.Fatalf("pool.New: %v", err)
	}
	return p
}

// rarityCounts tallies the rarity multiset of a booster.
func rarityCounts(b *Booster) map[pool.Rarity]int {
	counts := make(map[pool.Rarity]int)
	for _, c := range b.Cards {
		counts[c.Rarity]++
	}
	return counts
}

// boosterKey flattens a booster to a comparable string of card names.
func boosterKey(b *Booster) string {
	names := make([]string, len(b.Cards))
	for i, c := range b.Cards {
		names[i] = c.Name
	}
	return strings.Join(names, "|")
}

func TestAssembleSlotRule(t *testing.T) {
	p := makePool(t, 20, 10, 5, 2)
	a, err := New(p, Options{Seed: 7})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	boosters, err := a.Assemble(8)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(boosters) != 8 {
		t.Fatalf("got %d boosters, want 8", len(boosters))
	}

	for i, b := range boosters {
		if len(b.Cards) != StandardSize {
			t.Errorf("booster %d has %d cards, want %d", i, len(b.Cards), StandardSize)
		}
		counts := rarityCounts(b)
		rareOrMythic := counts[pool.RarityRare] + counts[pool.RarityMythic]
		if rareOrMythic != SlotRareMythic || counts[pool.RarityUncommon] != SlotUncommon || counts[pool.RarityCommon] != SlotCommon {
			t.Errorf("booster %d rarity multiset = %v", i, counts)
		}

		// Fixed order: rare/mythic first, then uncommons, then commons.
		if b.Cards[0].Rarity != pool.RarityRare && b.Cards[0].Rarity != pool.RarityMythic {
			t.Errorf("booster %d slot 0 rarity = %s", i, b.Cards[0].Rarity)
		}
		for _, c := range b.Cards[1:4] {
			if c.Rarity != pool.RarityUncommon {
				t.Errorf("booster %d uncommon slot holds %s", i, c.Rarity)
			}
		}
		for _, c := range b.Cards[4:] {
			if c.Rarity != pool.RarityCommon {
				t.Errorf("booster %d common slot holds %s", i, c.Rarity)
			}
		}

		// No duplicate card within a booster.
		seen := make(map[*pool.CardAsset]bool)
		for _, c := range b.Cards {
			if seen[c] {
				t.Errorf("booster %d contains %s twice", i, c.Name)
			}
			seen[c] = true
		}
	}
}

func TestAssembleDeterministic(t *testing.T) {
	for _, policy := range []Policy{PolicyWithReplacement, PolicyExhaustReshuffle} {
		t.Run(string(policy), func(t *testing.T) {
			run := func() []string {
				p := makePool(t, 30, 12, 6, 2)
				a, err := New(p, Options{Seed: 99, Policy: policy})
				if err != nil {
					t.Fatalf("New: %v", err)
				}
				boosters, err := a.Assemble(6)
				if err != nil {
					t.Fatalf("Assemble: %v", err)
				}
				keys := make([]string, len(boosters))
				for i, b := range boosters {
					keys[i] = boosterKey(b)
				}
				return keys
			}

			first, second := run(), run()
			for i := range first {
				if first[i] != second[i] {
					t.Errorf("booster %d differs between identical runs:\n%s\n%s", i, first[i], second[i])
				}
			}
		})
	}
}

func TestAssembleSeedsDiffer(t *testing.T) {
	p := makePool(t, 30, 12, 6, 2)

	a1, _ := New(p, Options{Seed: 1})
	a2, _ := New(p, Options{Seed: 2})
	b1, err := a1.Assemble(3)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := a2.Assemble(3)
	if err != nil {
		t.Fatal(err)
	}

	same := true
	for i := range b1 {
		if boosterKey(b1[i]) != boosterKey(b2[i]) {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical booster sequences")
	}
}

func TestMythicChanceZero(t *testing.T) {
	// The spec scenario: 110 commons, 40 uncommons, 10 rares, 3 mythics,
	// 10 boosters with mythic chance 0 never place a mythic.
	p := makePool(t, 110, 40, 10, 3)
	a, err := New(p, Options{MythicChance: 0, Seed: 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	boosters, err := a.Assemble(10)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	for i, b := range boosters {
		if counts := rarityCounts(b); counts[pool.RarityMythic] != 0 || counts[pool.RarityRare] != 1 {
			t.Errorf("booster %d rare slot = %v, want exactly 1 rare and no mythic", i, counts)
		}
	}
}

func TestMythicChanceOne(t *testing.T) {
	p := makePool(t, 20, 10, 5, 2)
	a, _ := New(p, Options{MythicChance: 1, Seed: 5})

	boosters, err := a.Assemble(5)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	for i, b := range boosters {
		if counts := rarityCounts(b); counts[pool.RarityMythic] != 1 {
			t.Errorf("booster %d has %d mythics, want 1", i, counts[pool.RarityMythic])
		}
	}
}

func TestMythicFallbackWithoutMythics(t *testing.T) {
	// No mythics in the pool: the rare-or-mythic slot falls back to rare
	// instead of failing, as long as rares exist.
	p := makePool(t, 20, 10, 5, 0)
	a, _ := New(p, Options{MythicChance: 1, Seed: 5})

	boosters, err := a.Assemble(4)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	for i, b := range boosters {
		if counts := rarityCounts(b); counts[pool.RarityRare] != 1 {
			t.Errorf("booster %d has %d rares, want 1", i, counts[pool.RarityRare])
		}
	}
}

func TestInsufficientCards(t *testing.T) {
	tests := []struct {
		name       string
		pool       *pool.Pool
		wantBucket pool.Rarity
		wantHave   int
	}{
		{"empty rares", makePool(t, 20, 10, 0, 0), pool.RarityRare, 0},
		{"empty commons", makePool(t, 0, 10, 5, 1), pool.RarityCommon, 0},
		{"bucket smaller than slots", makePool(t, 7, 10, 5, 1), pool.RarityCommon, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.pool, Options{MythicChance: 0, Seed: 3})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			_, err = a.Assemble(1)
			var insufficient *InsufficientCardsError
			if !stderrors.As(err, &insufficient) {
				t.Fatalf("Assemble error = %v, want InsufficientCardsError", err)
			}
			if insufficient.Bucket != tt.wantBucket {
				t.Errorf("Bucket = %s, want %s", insufficient.Bucket, tt.wantBucket)
			}
			if insufficient.Have != tt.wantHave {
				t.Errorf("Have = %d, want %d", insufficient.Have, tt.wantHave)
			}
		})
	}
}

func TestExhaustReshuffleCyclesBucket(t *testing.T) {
	// Six uncommons and two boosters needing three each: the reshuffle
	// policy must use all six before any repeat.
	p := makePool(t, 15, 6, 3, 1)
	a, err := New(p, Options{MythicChance: 0, Seed: 11, Policy: PolicyExhaustReshuffle})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	boosters, err := a.Assemble(2)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	seen := make(map[string]bool)
	for _, b := range boosters {
		for _, c := range b.Cards[1:4] {
			if seen[c.Name] {
				t.Errorf("uncommon %s repeated before the bucket was exhausted", c.Name)
			}
			seen[c.Name] = true
		}
	}
	if len(seen) != 6 {
		t.Errorf("used %d distinct uncommons, want 6", len(seen))
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicyWithReplacement, false},
		{"with-replacement", PolicyWithReplacement, false},
		{"with_replacement", PolicyWithReplacement, false},
		{"exhaust-reshuffle", PolicyExhaustReshuffle, false},
		{"exhaust_then_reshuffle", PolicyExhaustReshuffle, false},
		{"Exhaust-Then-Reshuffle", PolicyExhaustReshuffle, false},
		{"random", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	p := makePool(t, 15, 6, 3, 1)
	if _, err := New(p, Options{MythicChance: 1.5}); err == nil {
		t.Error("New should reject a chance above 1")
	}
	if _, err := New(p, Options{Policy: "bogus"}); err == nil {
		t.Error("New should reject an unknown policy")
	}
}
