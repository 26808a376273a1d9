// Package pipeline runs the loaders and the merger in dependency order and
// owns the resulting snapshot.
package pipeline

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KaramelBytes/districtlens-cli/internal/config"
	"github.com/KaramelBytes/districtlens-cli/internal/dataset"
	"github.com/KaramelBytes/districtlens-cli/internal/merge"
	"github.com/KaramelBytes/districtlens-cli/internal/source"
	"go.uber.org/zap"
)

// Source names a pipeline input.
type Source string

const (
	SourceCrime     Source = "crime"
	SourceCamera    Source = "camera"
	SourceHousehold Source = "household"
	SourceMerged    Source = "merged"
)

// ErrNotLoaded is returned for views requested before the first Load.
var ErrNotLoaded = errors.New("pipeline not loaded")

// Snapshot is the immutable output of one pipeline run. Tables whose loader
// failed are nil and their error is available through Err.
type Snapshot struct {
	Crime      *dataset.CrimeTable
	CrimeTypes []string
	Camera     *dataset.CameraTable
	Household  *dataset.HouseholdTable
	Merged     *dataset.MergeResult
	LoadedAt   time.Time

	errs map[Source]error
}

// Err returns the failure that left src unavailable, or nil.
func (s *Snapshot) Err(src Source) error {
	if s == nil {
		return ErrNotLoaded
	}
	return s.errs[src]
}

// Degraded reports whether the merge substituted a zero camera column.
func (s *Snapshot) Degraded() bool {
	return s != nil && s.Merged != nil && s.Merged.Degraded
}

// Pipeline wires the three loaders to the merger.
type Pipeline struct {
	Crime         *source.CrimeLoader
	Camera        *source.CameraLoader
	Household     *source.HouseholdLoader
	ReferenceYear int

	log *zap.Logger

	loadMu  sync.Mutex // serializes Load
	mu      sync.RWMutex
	current *Snapshot
}

// New builds a pipeline from configuration.
func New(cfg *config.Global, log *zap.Logger) (*Pipeline, error) {
	if log == nil {
		log = zap.NewNop()
	}
	rule, err := source.NewColumnRule(cfg.CameraYearPattern)
	if err != nil {
		return nil, fmt.Errorf("camera_year_pattern: %w", err)
	}
	camera := source.NewCameraLoader(cfg.CameraPath)
	camera.Sheet = cfg.CameraSheet
	camera.HeaderRow = cfg.CameraHeaderRow
	camera.YearColumns = rule

	household := source.NewHouseholdLoader(cfg.HouseholdPath)
	household.HeaderRow = cfg.HouseholdHeaderRow

	year := cfg.ReferenceYear
	if year == 0 {
		year = dataset.DefaultReferenceYear
	}
	return &Pipeline{
		Crime:         source.NewCrimeLoader(cfg.CrimePath),
		Camera:        camera,
		Household:     household,
		ReferenceYear: year,
		log:           log,
	}, nil
}

// Load runs crime → camera (filtered by crime districts), household, then
// the merge. The snapshot is stored even when some sources fail; the
// returned error joins every source failure.
func (p *Pipeline) Load() (*Snapshot, error) {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()
	start := time.Now()
	snap := &Snapshot{errs: map[Source]error{}}

	crime, types, err := p.Crime.Load()
	if err != nil {
		snap.errs[SourceCrime] = err
		snap.errs[SourceCamera] = fmt.Errorf("camera needs the crime district list: %w", err)
	} else {
		snap.Crime, snap.CrimeTypes = crime, types
		p.log.Debug("crime loaded", zap.Int("records", crime.Len()), zap.Int("types", len(types)))

		camera, err := p.Camera.Load(crime.DistrictSet())
		if err != nil {
			snap.errs[SourceCamera] = err
		} else {
			snap.Camera = camera
			p.log.Debug("camera loaded", zap.Int("districts", camera.Len()), zap.Strings("years", camera.YearColumns()))
			for _, w := range camera.Warnings() {
				p.log.Warn("camera cleaning", zap.String("warning", w))
			}
		}
	}

	household, err := p.Household.Load()
	if err != nil {
		snap.errs[SourceHousehold] = err
	} else {
		snap.Household = household
		p.log.Debug("household loaded", zap.Int("districts", household.Len()))
	}

	if snap.Crime != nil && snap.Camera != nil && snap.Household != nil {
		snap.Merged = merge.Merge(snap.Camera, snap.Household, snap.Crime, p.ReferenceYear)
		for _, w := range snap.Merged.Warnings {
			p.log.Warn("merge", zap.String("warning", w), zap.Bool("degraded", snap.Merged.Degraded))
		}
	} else {
		snap.errs[SourceMerged] = fmt.Errorf("merge skipped: %w", dataset.ErrSourceUnavailable)
	}
	snap.LoadedAt = time.Now()

	var errs []error
	for _, src := range []Source{SourceCrime, SourceCamera, SourceHousehold} {
		if e := snap.errs[src]; e != nil {
			errs = append(errs, e)
			p.log.Error("source unavailable", zap.String("source", string(src)), zap.Error(e))
		}
	}

	p.mu.Lock()
	p.current = snap
	p.mu.Unlock()

	p.log.Info("pipeline loaded",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("failed_sources", len(errs)),
		zap.Bool("degraded", snap.Degraded()))
	return snap, errors.Join(errs...)
}

// Current returns the last snapshot, or nil before the first Load.
func (p *Pipeline) Current() *Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Paths lists the source files the pipeline reads.
func (p *Pipeline) Paths() []string {
	return []string{p.Crime.Path, p.Camera.Path, p.Household.Path}
}
