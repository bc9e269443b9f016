// Package batch runs a manifest of file-pair comparisons concurrently,
// preserving manifest order in the output regardless of completion order.
//
// An errgroup.Group fans work out across goroutines into a pre-sized,
// index-addressed result slice, so no mutex is needed around the results
// themselves — each goroutine only ever touches its own index.
package batch

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/jlighthall/tlcompare/internal/compare"
	"github.com/jlighthall/tlcompare/pkg/tlcompare"
)

// Pair names one file-pair comparison in a manifest, with its own
// threshold overrides (falling back to the batch-wide defaults when a
// field is left at its zero value, except UserThreshold — see LoadManifest).
type Pair struct {
	File1      string  `yaml:"file1"`
	File2      string  `yaml:"file2"`
	UserThresholdSet bool `yaml:"-"`
	UserThreshold     float64 `yaml:"user_threshold"`
	CriticalThreshold float64 `yaml:"critical_threshold"`
	PrintThreshold    float64 `yaml:"print_threshold"`
}

// Manifest is the top-level shape of a batch YAML file.
type Manifest struct {
	Version int    `yaml:"version"`
	Pairs   []Pair `yaml:"pairs"`
}

// manifestPair is the raw decode shape, used to detect whether
// user_threshold was present in the YAML at all (zero is a meaningful
// sensitive-mode threshold, so the manifest needs its own "was it set"
// bit, the same concern internal/config.ApplyToThresholds resolves for
// the CLI flag).
type manifestPair struct {
	File1             string   `yaml:"file1"`
	File2             string   `yaml:"file2"`
	UserThreshold     *float64 `yaml:"user_threshold"`
	CriticalThreshold *float64 `yaml:"critical_threshold"`
	PrintThreshold    *float64 `yaml:"print_threshold"`
}

type manifestFile struct {
	Version int            `yaml:"version"`
	Pairs   []manifestPair `yaml:"pairs"`
}

// LoadManifest reads and parses a batch manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var raw manifestFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(raw.Pairs) == 0 {
		return nil, fmt.Errorf("manifest %s declares no pairs", path)
	}

	m := &Manifest{Version: raw.Version}
	for _, rp := range raw.Pairs {
		if rp.File1 == "" || rp.File2 == "" {
			return nil, fmt.Errorf("manifest %s: pair missing file1/file2", path)
		}
		p := Pair{File1: rp.File1, File2: rp.File2}
		if rp.UserThreshold != nil {
			p.UserThresholdSet = true
			p.UserThreshold = *rp.UserThreshold
		}
		if rp.CriticalThreshold != nil {
			p.CriticalThreshold = *rp.CriticalThreshold
		}
		if rp.PrintThreshold != nil {
			p.PrintThreshold = *rp.PrintThreshold
		}
		m.Pairs = append(m.Pairs, p)
	}
	return m, nil
}

// Result pairs one manifest Pair with its finished Report.
type Result struct {
	Pair   Pair
	Report *tlcompare.Report
}

// Run compares every pair in m concurrently against defaults (used for any
// threshold field the pair didn't override), returning results in manifest
// order. At most GOMAXPROCS comparisons run at once. Each Comparator
// instance is independent and shares no state, so no locking is needed
// beyond the result slice's index-per-goroutine discipline.
func Run(ctx context.Context, m *Manifest, defaults tlcompare.Thresholds) ([]Result, error) {
	results := make([]Result, len(m.Pairs))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, pair := range m.Pairs {
		i, pair := i, pair
		g.Go(func() error {
			th := defaults
			if pair.UserThresholdSet {
				th.UserThreshold = pair.UserThreshold
			}
			if pair.CriticalThreshold != 0 {
				th.CriticalThreshold = pair.CriticalThreshold
			}
			if pair.PrintThreshold != 0 {
				th.PrintThreshold = pair.PrintThreshold
			}

			report := compare.New(th).Compare(pair.File1, pair.File2)
			results[i] = Result{Pair: pair, Report: report}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
