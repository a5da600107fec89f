// Package pipeline wires preprocessing, DehazeNet and postprocessing into
// whole-image and whole-file operations.
package pipeline

import (
	"context"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/born-ml/dehaze/internal/imageio"
	"github.com/born-ml/dehaze/internal/imageproc"
	"github.com/born-ml/dehaze/internal/model"
	"github.com/born-ml/dehaze/internal/parallel"
	"github.com/born-ml/dehaze/internal/tensor"
)

// DefaultSuffix is appended to the base name of each output file.
const DefaultSuffix = "_dehazed"

// ErrDuplicateOutput is reported for an input whose output path was already
// claimed by an earlier input of the same batch.
var ErrDuplicateOutput = errors.New("duplicate output path")

// Options controls batch processing.
type Options struct {
	Workers int    // Images processed at once; values < 1 mean 1.
	Suffix  string // Appended to output base names.
}

// DefaultOptions processes one image at a time, since the CPU backend already
// parallelizes within each convolution.
func DefaultOptions() Options {
	return Options{
		Workers: 1,
		Suffix:  DefaultSuffix,
	}
}

// Result reports the outcome for one input file.
type Result struct {
	Input   string
	Output  string
	Err     error
	Elapsed time.Duration
}

// Dehazer runs a constructed DehazeNet over images and files.
//
// A Dehazer is safe for concurrent use.
type Dehazer[B tensor.Backend] struct {
	net  *model.DehazeNet[B]
	opts Options
}

// New creates a Dehazer around net.
func New[B tensor.Backend](net *model.DehazeNet[B], opts Options) *Dehazer[B] {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Dehazer[B]{net: net, opts: opts}
}

// Options returns the effective options.
func (d *Dehazer[B]) Options() Options {
	return d.opts
}

// DehazeRGB dehazes an interleaved (H, W, 3) buffer and returns a buffer of
// the same size.
func (d *Dehazer[B]) DehazeRGB(buf []uint8, height, width int) ([]uint8, error) {
	x, err := imageproc.Preprocess(buf, height, width, d.net.Backend())
	if err != nil {
		return nil, err
	}
	y, err := d.net.Forward(x)
	if err != nil {
		return nil, err
	}
	out, _, _, err := imageproc.Postprocess(y)
	return out, err
}

// DehazeImage dehazes img. Alpha is discarded; the result is opaque.
func (d *Dehazer[B]) DehazeImage(img image.Image) (*image.NRGBA, error) {
	buf, height, width := imageproc.FromImage(img)
	out, err := d.DehazeRGB(buf, height, width)
	if err != nil {
		return nil, err
	}
	return imageproc.ToImage(out, height, width)
}

// DehazeFile reads src, dehazes it and writes the result to dst. The output
// format follows dst's extension.
func (d *Dehazer[B]) DehazeFile(src, dst string) error {
	buf, height, width, err := imageio.Open(src)
	if err != nil {
		return err
	}
	out, err := d.DehazeRGB(buf, height, width)
	if err != nil {
		return errors.Wrapf(err, "unable to dehaze %q", src)
	}
	return imageio.Save(dst, out, height, width)
}

// ProcessFiles dehazes every path into outDir and returns one Result per
// input, in input order. A failing image does not stop the others.
// Files not yet started when ctx is canceled report ctx.Err().
//
// Inputs mapping to the same output path (e.g. a/x.png and b/x.png) are
// processed once: the first wins, later ones fail with ErrDuplicateOutput.
func (d *Dehazer[B]) ProcessFiles(ctx context.Context, paths []string, outDir string) []Result {
	results := make([]Result, len(paths))
	claimed := make(map[string]int, len(paths))
	for i, src := range paths {
		dst := OutputPath(outDir, src, d.opts.Suffix)
		results[i] = Result{Input: src, Output: dst}
		if first, ok := claimed[dst]; ok {
			results[i].Err = errors.Wrapf(ErrDuplicateOutput, "%q already written for %q", dst, paths[first])
			continue
		}
		claimed[dst] = i
	}

	parallel.For(len(paths), func(i int) {
		if results[i].Err != nil {
			return
		}
		src, dst := results[i].Input, results[i].Output

		if err := ctx.Err(); err != nil {
			results[i].Err = err
			return
		}
		start := time.Now()
		results[i].Err = d.DehazeFile(src, dst)
		results[i].Elapsed = time.Since(start)
	}, parallel.Workers(d.opts.Workers))
	return results
}

// OutputPath maps an input file to its location in outDir:
// "in/haze.png" -> "outDir/haze<suffix>.png".
func OutputPath(outDir, src, suffix string) string {
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	return filepath.Join(outDir, strings.TrimSuffix(base, ext)+suffix+ext)
}
