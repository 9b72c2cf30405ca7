package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/AnyUserName/salmap-cli/internal/cache"
	"github.com/AnyUserName/salmap-cli/internal/evaluate"
	"github.com/AnyUserName/salmap-cli/internal/focus"
	"github.com/AnyUserName/salmap-cli/internal/hasher"
	"github.com/AnyUserName/salmap-cli/internal/report"
	"github.com/AnyUserName/salmap-cli/internal/saliency"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	image report.Image
	err   error
}

// detailed is implemented by algorithms that expose histogram statistics.
type detailed interface {
	ComputeResult(img image.Image) (*saliency.Map, *saliency.Result, error)
}

// DecodeFile reads and decodes an image, returning the raw bytes too.
func DecodeFile(name string) (image.Image, []byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, data, nil
}

// processImage handles a single source image: decode, then per algorithm
// compute or load the map, derive focus and crop, score and save it.
func (p *Pipeline) processImage(src Source) processResult {
	result := processResult{key: src.Key}

	img, data, err := DecodeFile(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("%s: %w", src.RelPath, err)
		return result
	}
	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()

	result.image = report.Image{
		Original: report.OriginalInfo{
			Width:  origW,
			Height: origH,
			Format: src.Format,
			Size:   src.Size,
		},
		Results: make(map[string]report.Result, len(p.algorithms)),
	}

	var truth image.Image
	if name := FindTruth(p.cfg.TruthDir, src.Key); name != "" {
		truth, _, err = DecodeFile(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[salmap] warn: truth for %s: %v\n", src.Key, err)
			truth = nil
		}
	}

	for _, alg := range p.algorithms {
		res, err := p.runAlgorithm(alg, src, img, data, truth)
		if err != nil {
			result.err = fmt.Errorf("%s: %s: %w", src.RelPath, alg.Name(), err)
			return result
		}
		result.image.Results[alg.Name()] = res
	}
	return result
}

func (p *Pipeline) runAlgorithm(alg saliency.Algorithm, src Source, img image.Image, data []byte, truth image.Image) (report.Result, error) {
	var res report.Result
	origW, origH := img.Bounds().Dx(), img.Bounds().Dy()

	var entry *cache.Entry
	var key string
	if p.store != nil {
		var err error
		key, err = cache.Key(data, alg.Name(), p.cfg.Saliency)
		if err != nil {
			return res, err
		}
		e, ok, err := p.store.Get(key)
		if err != nil && p.cfg.Verbose {
			fmt.Fprintf(os.Stderr, "[salmap] cache: %v\n", err)
		}
		if ok {
			entry = e
			res.Cached = true
		}
	}

	if entry == nil {
		start := time.Now()
		entry = &cache.Entry{}
		var err error
		if d, ok := alg.(detailed); ok {
			var r *saliency.Result
			entry.Map, r, err = d.ComputeResult(img)
			if err == nil {
				entry.Colors = r.Quantization.NumColors()
				entry.Mismatches = r.Quantization.Mismatches
			}
		} else {
			entry.Map, err = alg.Compute(img)
		}
		if err != nil {
			return res, err
		}
		res.DurationMS = float64(time.Since(start).Microseconds()) / 1000
		if p.store != nil {
			if err := p.store.Put(key, entry); err != nil {
				fmt.Fprintf(os.Stderr, "[salmap] warn: cache put %s: %v\n", src.Key, err)
			}
		}
	}

	m := entry.Map
	res.Colors = entry.Colors
	res.Mismatches = entry.Mismatches
	res.Mean = m.Mean()
	res.Focus = focus.Analyze(m)
	crop := focus.Crop(res.Focus, origW, origH, p.cfg.Profile.CropRatio)
	res.Crop = report.Rect{X: crop.Min.X, Y: crop.Min.Y, Width: crop.Dx(), Height: crop.Dy()}

	if truth != nil {
		score, err := evaluate.Compare(m, truth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[salmap] warn: score %s: %v\n", src.Key, err)
		} else {
			res.Score = &score
		}
	}

	if p.cfg.NoSave {
		return res, nil
	}
	out, err := p.encoder.Encode(m.Image(origW, origH), p.cfg.Profile.Quality)
	if err != nil {
		return res, fmt.Errorf("encode: %w", err)
	}
	hash := hasher.ContentHash(out, hasher.FullLen)
	relPath := path.Join(alg.Name(), fmt.Sprintf("%s.%s.%s", src.Key, hash[:hasher.ShortLen], p.encoder.Extension()))
	outPath := filepath.Join(p.cfg.OutputDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return res, err
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return res, fmt.Errorf("write %s: %w", relPath, err)
	}
	res.Path = relPath
	res.Hash = hash
	res.Size = int64(len(out))
	return res, nil
}
