package candidates

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bnema/pacer/internal/domain"
	"github.com/bnema/pacer/internal/ports"
)

const fileSuffix = ".txt"

// Registry resolves a phase's source name against the policy's source table.
// Names missing from the table are read from <dir>/<name>.txt.
type Registry struct {
	specs map[string]domain.CandidateSourceSpec
	dir   string
	clock ports.Clock
	rng   ports.Random
}

var _ ports.CandidateSourceProvider = (*Registry)(nil)

func NewRegistry(specs map[string]domain.CandidateSourceSpec, dir string, clock ports.Clock, rng ports.Random) *Registry {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Registry{specs: specs, dir: dir, clock: clock, rng: rng}
}

func (r *Registry) Spec(name string) domain.CandidateSourceSpec {
	if spec, ok := r.specs[name]; ok {
		return spec
	}

	return domain.CandidateSourceSpec{Name: name, Kind: domain.SourceKindFile}
}

func (r *Registry) Open(ctx context.Context, phase domain.Phase, ledger domain.Ledger) (ports.CandidateSource, error) {
	spec := r.Spec(phase.Source)

	switch spec.Kind {
	case domain.SourceKindFile:
		return OpenFile(r.filePath(spec))
	case domain.SourceKindCommand:
		return OpenCommand(ctx, spec.Command)
	case domain.SourceKindLedger:
		return r.openStaleFollows(spec, ledger), nil
	default:
		return nil, fmt.Errorf("open source %s: unsupported kind %q", spec.Name, spec.Kind)
	}
}

func (r *Registry) filePath(spec domain.CandidateSourceSpec) string {
	path := spec.Path
	if path == "" {
		path = spec.Name + fileSuffix
	}
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(r.dir, path)
}

// openStaleFollows yields accounts followed at least OlderThanDays ago that
// were never unfollowed, in random order.
func (r *Registry) openStaleFollows(spec domain.CandidateSourceSpec, ledger domain.Ledger) *SliceSource {
	cutoff := r.clock.Now().Add(-time.Duration(spec.OlderThanDays) * 24 * time.Hour)
	targets := ledger.StaleTargets(domain.ActionFollow, domain.ActionUnfollow, cutoff)

	if r.rng != nil {
		for i := len(targets) - 1; i > 0; i-- {
			j := r.rng.IntN(i + 1)
			targets[i], targets[j] = targets[j], targets[i]
		}
	}

	return NewSliceSource(targets...)
}
