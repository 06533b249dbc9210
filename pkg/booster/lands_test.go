package booster

import (
	"testing"

	"github.com/packsmith/packsmith/pkg/pool"
)

func makeLandPool(t *testing.T, variants map[pool.LandType]int) *pool.Pool {
	t.Helper()
	var assets []*pool.CardAsset
	for _, lt := range pool.LandTypes {
		for i := 1; i <= variants[lt]; i++ {
			assets = append(assets, &pool.CardAsset{
				Name:        string(lt),
				ImagePath:   string(lt) + ".png",
				Rarity:      pool.RarityCommon,
				IsBasicLand: true,
				LandType:    lt,
				Variant:     i,
			})
		}
	}
	p, err := pool.New(assets)
	if err != nil {
		t.Fatalf("pool.New: %v", err)
	}
	return p
}

func TestLands(t *testing.T) {
	p := makeLandPool(t, map[pool.LandType]int{
		pool.LandForest: 3,
		pool.LandIsland: 1,
	})

	boosters := Lands(p)
	if len(boosters) != 2 {
		t.Fatalf("got %d land boosters, want 2", len(boosters))
	}
	if _, ok := boosters[pool.LandPlains]; ok {
		t.Error("zero-variant land type should be skipped, not present")
	}

	forest := boosters[pool.LandForest]
	if forest == nil {
		t.Fatal("missing Forest booster")
	}
	if forest.Kind != KindLand || forest.LandType != pool.LandForest {
		t.Errorf("forest booster kind/type = %s/%s", forest.Kind, forest.LandType)
	}
	if forest.Label() != "land_Forest" {
		t.Errorf("Label = %q, want land_Forest", forest.Label())
	}
	if len(forest.Cards) != 3 {
		t.Fatalf("forest booster has %d cards, want 3", len(forest.Cards))
	}
	for i, c := range forest.Cards {
		if c.Variant != i+1 {
			t.Errorf("forest card %d has variant %d, want %d", i, c.Variant, i+1)
		}
	}

	island := boosters[pool.LandIsland]
	if island == nil || len(island.Cards) != 1 {
		t.Fatalf("island booster = %+v, want 1 card", island)
	}
}

func TestLandsEmptyPool(t *testing.T) {
	p, err := pool.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	if boosters := Lands(p); len(boosters) != 0 {
		t.Errorf("got %d land boosters from empty pool, want 0", len(boosters))
	}
}
