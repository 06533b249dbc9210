// Package export writes packing results to disk: sheet textures, the run
// manifest, and per-booster asset folders.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/packsmith/packsmith/pkg/booster"
	"github.com/packsmith/packsmith/pkg/errors"
	"github.com/packsmith/packsmith/pkg/sheet"
)

// SheetFilePattern names sheet files on disk. Sheets are numbered from 1 in
// packing order.
const SheetFilePattern = "deck_sheet_%d.png"

// ManifestFile is the manifest's filename inside the output directory.
const ManifestFile = "manifest.json"

// Manifest describes one completed packing run. It is written next to the
// sheets so an importer can reconstruct the grid without guessing.
type Manifest struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Rows        int             `json:"rows"`
	Cols        int             `json:"cols"`
	CardWidth   int             `json:"card_width"`
	CardHeight  int             `json:"card_height"`
	SheetCount  int             `json:"sheet_count"`
	Sheets      []ManifestSheet `json:"sheets"`
}

// ManifestSheet is the manifest entry for one sheet file.
type ManifestSheet struct {
	File     string   `json:"file"`
	Occupied int      `json:"occupied"`
	Skipped  []string `json:"skipped,omitempty"`
}

// PrepareDir makes path usable as an output directory. A missing directory is
// created, an empty one is accepted, and a non-empty one is an error unless
// force is set, in which case it is removed and recreated.
func PrepareDir(path string, force bool) error {
	entries, err := os.ReadDir(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create output dir %s", path)
		}
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "read output dir %s", path)
	}
	if len(entries) == 0 {
		return nil
	}
	if !force {
		return errors.New(errors.ErrCodeOutputExists,
			"output directory %s is not empty (use force to overwrite)", path)
	}
	if err := os.RemoveAll(path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "clear output dir %s", path)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create output dir %s", path)
	}
	return nil
}

// WriteSheets saves rendered sheet textures into dir and writes the run
// manifest alongside them. Sheet files are numbered from 1 in packing order.
func WriteSheets(dir string, rendered []*sheet.Rendered, job *sheet.Job) (*Manifest, error) {
	m := &Manifest{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Rows:        job.Rows,
		Cols:        job.Cols,
		CardWidth:   job.CardWidth,
		CardHeight:  job.CardHeight,
		SheetCount:  len(rendered),
		Sheets:      make([]ManifestSheet, len(rendered)),
	}

	for _, r := range rendered {
		name := fmt.Sprintf(SheetFilePattern, r.Index+1)
		if err := imaging.Save(r.Image, filepath.Join(dir, name)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "save sheet %s", name)
		}
		entry := ManifestSheet{File: name, Occupied: r.Occupied}
		for _, s := range r.Skipped {
			entry.Skipped = append(entry.Skipped, s.Path)
		}
		m.Sheets[r.Index] = entry
	}

	f, err := os.Create(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create manifest")
	}
	defer f.Close()
	if err := writeManifest(m, f); err != nil {
		return nil, err
	}
	return m, nil
}

func writeManifest(m *Manifest, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode manifest")
	}
	return nil
}

// boosterManifest is the booster.json payload written into each booster
// folder.
type boosterManifest struct {
	Kind  string        `json:"kind"`
	Land  string        `json:"land,omitempty"`
	Cards []boosterCard `json:"cards"`
}

type boosterCard struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Rarity   string `json:"rarity,omitempty"`
	File     string `json:"file"`
}

// WriteBoosters materializes boosters as folders under dir. Each booster gets
// a directory (booster_<k> for standard packs, land_<type> for land packs)
// holding position-prefixed copies of its card images plus a booster.json
// listing the contents in slot order.
func WriteBoosters(dir string, boosters []*booster.Booster) error {
	standard := 0
	for _, b := range boosters {
		var name string
		if b.Kind == booster.KindStandard {
			standard++
			name = fmt.Sprintf("booster_%d", standard)
		} else {
			name = b.Label()
		}
		if err := writeBooster(filepath.Join(dir, name), b); err != nil {
			return err
		}
	}
	return nil
}

func writeBooster(dir string, b *booster.Booster) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create booster dir %s", dir)
	}

	m := boosterManifest{Kind: string(b.Kind)}
	if b.Kind == booster.KindLand {
		m.Land = string(b.LandType)
	}

	for i, card := range b.Cards {
		dst := fmt.Sprintf("%02d_%s", i+1, filepath.Base(card.ImagePath))
		if err := copyFile(card.ImagePath, filepath.Join(dir, dst)); err != nil {
			return err
		}
		m.Cards = append(m.Cards, boosterCard{
			Position: i + 1,
			Name:     card.Name,
			Rarity:   string(card.Rarity),
			File:     dst,
		})
	}

	f, err := os.Create(filepath.Join(dir, "booster.json"))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create booster manifest")
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode booster manifest")
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(errors.ErrCodeAssetRead, err, "open %s", src)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", dst)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "copy %s", dst)
	}
	return out.Close()
}
