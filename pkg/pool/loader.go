package pool

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/packsmith/packsmith/pkg/errors"
)

// imageExts lists the file extensions recognized as card images.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// LoadError records a card image whose metadata was missing or malformed.
// The file is excluded from the pool; the run continues.
type LoadError struct {
	File   string // image file name, relative to the pool directory
	Reason string
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Reason)
}

// Report collects the non-fatal findings of a Load call: per-file metadata
// problems and buckets that came up empty. An empty bucket is not fatal until
// an operation actually needs to draw from it.
type Report struct {
	// Errors lists card images that were excluded due to missing or
	// malformed metadata.
	Errors []*LoadError

	// EmptyBuckets lists empty rarity buckets ("rare") and, when the pool
	// contains any basic lands, land types without variants ("land:Forest").
	EmptyBuckets []string
}

// HasWarnings reports whether the load produced anything worth surfacing.
func (r *Report) HasWarnings() bool {
	return len(r.Errors) > 0 || len(r.EmptyBuckets) > 0
}

// sidecar is the on-disk metadata shape written by the set generator:
// the card dict wrapped in a {"card": ...} envelope.
type sidecar struct {
	Card cardMeta `json:"card"`
}

type cardMeta struct {
	Name            string   `json:"name"`
	Rarity          string   `json:"rarity"`
	Type            string   `json:"type"`
	Colors          []string `json:"colors"`
	CollectorNumber string   `json:"collector_number"`
	Variant         int      `json:"variant"`
}

// Load reads a directory of card images and their metadata sidecars into a
// classified Pool.
//
// For every image file (.png/.jpg/.jpeg) the loader expects a sidecar named
// after the image with a .json extension. Images with a missing or malformed
// sidecar are excluded and reported in the Report; files that are not card
// images are skipped silently. An unreadable directory is fatal.
func Load(dir string) (*Pool, *Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodePoolNotFound, err, "pool directory %s", dir)
		}
		return nil, nil, errors.Wrap(errors.ErrCodePoolLoad, err, "read pool directory %s", dir)
	}

	report := &Report{}
	var assets []*CardAsset
	variantSeen := make(map[LandType]map[int]string)

	for _, entry := range entries {
		if entry.IsDir() || !imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		asset, lerr := loadOne(dir, entry.Name())
		if lerr != nil {
			report.Errors = append(report.Errors, lerr)
			continue
		}

		// Variant uniqueness is checked here so the second file is named
		// as the offender and the first stays in the pool.
		if asset.IsBasicLand {
			seen := variantSeen[asset.LandType]
			if seen == nil {
				seen = make(map[int]string)
				variantSeen[asset.LandType] = seen
			}
			if prev, dup := seen[asset.Variant]; dup {
				report.Errors = append(report.Errors, &LoadError{
					File:   entry.Name(),
					Reason: fmt.Sprintf("duplicate %s variant %d (already used by %s)", asset.LandType, asset.Variant, prev),
				})
				continue
			}
			seen[asset.Variant] = entry.Name()
		}

		assets = append(assets, asset)
	}

	p, err := New(assets)
	if err != nil {
		return nil, nil, err
	}

	for _, r := range Rarities {
		if len(p.Bucket(r)) == 0 {
			report.EmptyBuckets = append(report.EmptyBuckets, string(r))
		}
	}
	if len(p.PresentLandTypes()) > 0 {
		for _, t := range LandTypes {
			if len(p.LandVariants(t)) == 0 {
				report.EmptyBuckets = append(report.EmptyBuckets, "land:"+string(t))
			}
		}
	}

	return p, report, nil
}

// loadOne validates one image file's sidecar into a CardAsset.
func loadOne(dir, name string) (*CardAsset, *LoadError) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	sidecarPath := filepath.Join(dir, base+".json")

	data, err := os.ReadFile(sidecarPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{File: name, Reason: "missing metadata sidecar " + base + ".json"}
		}
		return nil, &LoadError{File: name, Reason: "read sidecar: " + err.Error()}
	}

	var sc sidecar
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, &LoadError{File: name, Reason: "malformed sidecar: " + err.Error()}
	}
	meta := sc.Card
	if meta.Name == "" {
		meta.Name = base
	}

	asset := &CardAsset{
		Name:            meta.Name,
		ImagePath:       filepath.Join(dir, name),
		Colors:          meta.Colors,
		CollectorNumber: meta.CollectorNumber,
	}

	if isBasicLandType(meta.Type) {
		t, ok := landTypeFrom(meta.Type, meta.Name)
		if !ok {
			return nil, &LoadError{File: name, Reason: fmt.Sprintf("cannot determine land type from %q", meta.Type)}
		}
		asset.IsBasicLand = true
		asset.LandType = t
		asset.Rarity = RarityCommon
		asset.Variant = meta.Variant
		if asset.Variant == 0 {
			asset.Variant = variantFromName(meta.Name)
		}
		return asset, nil
	}

	r, err := ParseRarity(meta.Rarity)
	if err != nil {
		return nil, &LoadError{File: name, Reason: fmt.Sprintf("invalid rarity %q", meta.Rarity)}
	}
	asset.Rarity = r
	return asset, nil
}

// isBasicLandType reports whether a card type line denotes a basic land,
// e.g. "Basic Land — Forest".
func isBasicLandType(typeLine string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(typeLine)), "basic land")
}

// landTypeFrom extracts the land type from the type line's subtype, falling
// back to the leading word of the card name ("Forest 2").
func landTypeFrom(typeLine, name string) (LandType, bool) {
	for _, t := range LandTypes {
		if strings.Contains(strings.ToLower(typeLine), strings.ToLower(string(t))) {
			return t, true
		}
	}
	fields := strings.Fields(name)
	if len(fields) > 0 {
		return ParseLandType(fields[0])
	}
	return "", false
}

// variantFromName parses a trailing integer from a card name ("Forest 2" -> 2).
// Names without a trailing number get variant 1.
func variantFromName(name string) int {
	fields := strings.Fields(name)
	if len(fields) > 1 {
		if v, err := strconv.Atoi(fields[len(fields)-1]); err == nil && v > 0 {
			return v
		}
	}
	return 1
}

// Scan reads a directory as a loose, ordered card image listing for packing.
//
// Unlike Load, a missing sidecar is not an error: the asset keeps the file's
// base name and an empty rarity. This supports packing arbitrary directories
// of card images that were never classified into a pool. Files are returned
// in name order.
func Scan(dir string) ([]*CardAsset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodePoolNotFound, err, "directory %s", dir)
		}
		return nil, errors.Wrap(errors.ErrCodePoolLoad, err, "read directory %s", dir)
	}

	var assets []*CardAsset
	for _, entry := range entries {
		if entry.IsDir() || !imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		if asset, lerr := loadOne(dir, entry.Name()); lerr == nil {
			assets = append(assets, asset)
			continue
		}
		base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		assets = append(assets, &CardAsset{
			Name:      base,
			ImagePath: filepath.Join(dir, entry.Name()),
		})
	}
	return assets, nil
}
