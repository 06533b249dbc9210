package errors

// MaxGridEdge is the largest accepted value for sheet rows or columns.
// Tabletop Simulator reads custom decks up to a 10x7 grid; the cap is kept a
// little looser so other virtual tabletops with bigger grids still work.
const MaxGridEdge = 16

// MaxCardEdge is the largest accepted per-card pixel edge. A full sheet must
// stay within the importing platform's texture ceiling (4096px for Tabletop
// Simulator); this is documented as a configuration ceiling, the composition
// itself accepts whatever grid and card size were configured.
const MaxCardEdge = 2048

// ValidateGrid validates sheet grid dimensions.
// Rows and columns must both be at least 1; zero or negative values indicate
// a configuration mistake and abort the run.
func ValidateGrid(rows, cols int) error {
	if rows < 1 {
		return New(ErrCodeInvalidGrid, "sheet rows must be at least 1, got %d", rows)
	}
	if cols < 1 {
		return New(ErrCodeInvalidGrid, "sheet columns must be at least 1, got %d", cols)
	}
	if rows > MaxGridEdge {
		return New(ErrCodeInvalidGrid, "sheet rows too large: %d (max %d)", rows, MaxGridEdge)
	}
	if cols > MaxGridEdge {
		return New(ErrCodeInvalidGrid, "sheet columns too large: %d (max %d)", cols, MaxGridEdge)
	}
	return nil
}

// ValidateCardSize validates the per-card pixel dimensions used for sheet cells.
func ValidateCardSize(width, height int) error {
	if width < 1 {
		return New(ErrCodeInvalidCardSize, "card width must be at least 1px, got %d", width)
	}
	if height < 1 {
		return New(ErrCodeInvalidCardSize, "card height must be at least 1px, got %d", height)
	}
	if width > MaxCardEdge || height > MaxCardEdge {
		return New(ErrCodeInvalidCardSize, "card size %dx%d too large (max edge %dpx)", width, height, MaxCardEdge)
	}
	return nil
}

// ValidateChance validates a probability value such as the mythic chance.
func ValidateChance(p float64) error {
	if p < 0 || p > 1 {
		return New(ErrCodeInvalidChance, "chance must be between 0 and 1, got %g", p)
	}
	return nil
}

// ValidateBoosterCount validates a requested booster count.
// Zero is allowed (no standard boosters requested); negative counts are not.
func ValidateBoosterCount(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidCount, "booster count cannot be negative, got %d", n)
	}
	return nil
}

// ValidateWorkers validates a render worker count. Zero means "pick a default".
func ValidateWorkers(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidWorkers, "worker count cannot be negative, got %d", n)
	}
	return nil
}
