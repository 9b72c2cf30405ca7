package pipeline

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"

	"github.com/AnyUserName/salmap-cli/internal/cache"
	"github.com/AnyUserName/salmap-cli/internal/encoder"
	"github.com/AnyUserName/salmap-cli/internal/profile"
	"github.com/AnyUserName/salmap-cli/internal/report"
	"github.com/AnyUserName/salmap-cli/internal/saliency"
)

// Config holds all parameters for a compute pipeline run.
type Config struct {
	InputDir  string
	OutputDir string
	TruthDir  string // optional ground-truth maps, same relative keys
	CacheDir  string // optional map cache
	Profile   profile.Profile
	Saliency  saliency.Config
	Workers   int
	Top       int  // process only the first N images
	NoSave    bool // skip writing map files
	Verbose   bool
}

// Pipeline orchestrates saliency computation over a directory.
type Pipeline struct {
	cfg        Config
	algorithms []saliency.Algorithm
	encoder    encoder.Encoder
	store      *cache.Store
}

// New creates a configured pipeline. Every algorithm of the profile is
// built up front so configuration errors surface before any work starts.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Verbose && cfg.Saliency.Log == nil {
		cfg.Saliency.Log = log.New(os.Stderr, "[salmap] ", 0)
	}
	sc, err := cfg.Saliency.WithDefaults()
	if err != nil {
		return nil, err
	}
	cfg.Saliency = sc

	p := &Pipeline{cfg: cfg}
	if len(cfg.Profile.Algorithms) == 0 {
		return nil, fmt.Errorf("profile %q selects no algorithms", cfg.Profile.Name)
	}
	for _, name := range cfg.Profile.Algorithms {
		alg, err := saliency.New(name, cfg.Saliency)
		if err != nil {
			return nil, err
		}
		p.algorithms = append(p.algorithms, alg)
	}

	enc, err := encoder.NewRegistry().Resolve(cfg.Profile.Format)
	if err != nil {
		return nil, err
	}
	p.encoder = enc

	if cfg.CacheDir != "" {
		p.store = &cache.Store{Dir: cfg.CacheDir}
	}
	return p, nil
}

// Run executes the full pipeline and returns the report.
func (p *Pipeline) Run() (*report.Report, error) {
	sources, err := ScanImages(p.cfg.InputDir, p.cfg.Top)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}

	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[salmap] found %d images, algorithms %v, %s maps\n",
			len(sources), p.cfg.Profile.Algorithms, p.encoder.Format())
	}

	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			if p.cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[salmap] processing: %s\n", s.Key)
			}

			results[idx] = p.processImage(s)

			if p.cfg.Verbose && results[idx].err == nil {
				fmt.Fprintf(os.Stderr, "[salmap] done: %s (%d maps)\n",
					s.Key, len(results[idx].image.Results))
			}
		}(i, src)
	}
	wg.Wait()

	names := make([]string, len(p.algorithms))
	for i, a := range p.algorithms {
		names[i] = a.Name()
	}
	r := report.New(p.cfg.Profile.Name, names)

	var errs []error
	for _, res := range results {
		if res.err != nil {
			errs = append(errs, res.err)
			continue
		}
		r.Images[res.key] = res.image
	}

	// Report errors but don't fail the entire run for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[salmap] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[salmap] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}

	sc := p.cfg.Saliency
	r.BuildInfo = &report.BuildInfo{
		Workers:                p.cfg.Workers,
		Width:                  sc.Width,
		Height:                 sc.Height,
		Bins:                   sc.Bins,
		SigmaC:                 sc.SigmaC,
		HeightNormalizedSpread: sc.HeightNormalizedSpread,
	}
	r.ComputeStats()
	return r, nil
}
