// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"

	"github.com/verte-zerg/cubetui/internal/model"
	"github.com/verte-zerg/cubetui/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Solves []model.Solve
	Stats  model.StatisticsResult
	Bests  map[model.PBKind]model.PersonalBest
}

// BuildReport loads and prepares data for stats rendering. Solves is the
// filtered view; the best-* values are backed by the full history of the
// same puzzle/case scope, ignoring the date and last-n trims.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	solves, err := st.ListSolves(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(solves) > cfg.Last {
		solves = solves[len(solves)-cfg.Last:]
	}

	history, err := st.ListSolves(ctx, model.StatsConfig{Puzzle: cfg.Puzzle, CaseID: cfg.CaseID})
	if err != nil {
		return Report{}, err
	}
	bests, err := st.GetPersonalBests(ctx, cfg.Puzzle)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Solves: solves,
		Stats:  Compute(solves, history),
		Bests:  bests,
	}, nil
}
