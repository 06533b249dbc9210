package sheet

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/packsmith/packsmith/pkg/errors"
)

// AssetReadError records one card image that failed to decode during packing.
// The asset's cell is left blank and the run continues.
type AssetReadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *AssetReadError) Error() string {
	return fmt.Sprintf("read asset %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *AssetReadError) Unwrap() error {
	return e.Err
}

// Rendered is one composed sheet texture.
type Rendered struct {
	Index    int
	Image    *image.NRGBA
	Occupied int // cells assigned by the layout (blanked cells included)
	Skipped  []*AssetReadError
}

// Compose renders sheet textures from a precomputed cell assignment.
//
// Unique assets are decoded and fitted to the cell size once, then sheets are
// composed concurrently (task per sheet, bounded by job.Workers). The fan-out
// introduces no ordering requirement because the assignment was computed up
// front; results come back indexed by sheet.
//
// A corrupt or unreadable asset is logged, recorded in the owning sheet's
// Skipped list, and its cell stays transparent; a single bad asset never
// aborts the job. Only context cancellation or a back-image failure abort.
func Compose(ctx context.Context, sheets []Sheet, job *Job) ([]*Rendered, error) {
	if err := job.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	decoded, failures, err := decodeAssets(ctx, sheets, job)
	if err != nil {
		return nil, err
	}

	var back image.Image
	if job.ReserveBack {
		if back, err = backImage(job); err != nil {
			return nil, err
		}
	}

	out := make([]*Rendered, len(sheets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(job.Workers)
	for i := range sheets {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = composeOne(&sheets[i], decoded, failures, back, job)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeAssets loads every unique asset referenced by the sheets, fitted to
// the cell size. Decode failures land in the failures map instead of
// aborting. Repeated assets (the same card across several boosters) decode
// once.
func decodeAssets(ctx context.Context, sheets []Sheet, job *Job) (map[string]image.Image, map[string]*AssetReadError, error) {
	unique := make(map[string]bool)
	for i := range sheets {
		for _, c := range sheets[i].Cells {
			unique[c.Asset.ImagePath] = true
		}
	}

	var mu sync.Mutex
	decoded := make(map[string]image.Image, len(unique))
	failures := make(map[string]*AssetReadError)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(job.Workers)
	for path := range unique {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := imaging.Open(path)
			if err != nil {
				job.Logger.Warn("skipping unreadable asset", "path", path, "err", err)
				mu.Lock()
				failures[path] = &AssetReadError{Path: path, Err: err}
				mu.Unlock()
				return nil
			}
			fitted := imaging.Fill(img, job.CardWidth, job.CardHeight, imaging.Center, imaging.Lanczos)
			mu.Lock()
			decoded[path] = fitted
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return decoded, failures, nil
}

// composeOne paints a single sheet texture from decoded assets.
func composeOne(s *Sheet, decoded map[string]image.Image, failures map[string]*AssetReadError, back image.Image, job *Job) *Rendered {
	canvas := imaging.New(job.Cols*job.CardWidth, job.Rows*job.CardHeight, color.NRGBA{})

	r := &Rendered{Index: s.Index, Occupied: len(s.Cells)}
	for _, cell := range s.Cells {
		img, ok := decoded[cell.Asset.ImagePath]
		if !ok {
			// Cell stays transparent.
			r.Skipped = append(r.Skipped, failures[cell.Asset.ImagePath])
			continue
		}
		canvas = imaging.Paste(canvas, img, image.Pt(cell.Col*job.CardWidth, cell.Row*job.CardHeight))
	}

	if back != nil {
		canvas = imaging.Paste(canvas, back,
			image.Pt((job.Cols-1)*job.CardWidth, (job.Rows-1)*job.CardHeight))
	}

	r.Image = canvas
	return r
}

// backImage loads the configured back image, or generates a neutral one.
// Unlike per-card assets, an unreadable back is fatal: it would blank the
// back cell of every sheet.
func backImage(job *Job) (image.Image, error) {
	if job.BackPath == "" {
		return generateBack(job.CardWidth, job.CardHeight), nil
	}
	img, err := imaging.Open(job.BackPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetRead, err, "back image %s", job.BackPath)
	}
	return imaging.Fill(img, job.CardWidth, job.CardHeight, imaging.Center, imaging.Lanczos), nil
}
