package stats

import "github.com/verte-zerg/cubetui/internal/model"

// Minimum history sizes before a record kind is tracked.
var pbThresholds = map[model.PBKind]int{
	model.PBSingle: 1,
	model.PBAo5:    WindowAo5,
	model.PBAo12:   WindowAo12,
	model.PBAo50:   WindowAo50,
	model.PBAo100:  WindowAo100,
}

// DetectPersonalBests compares the best values of history against the
// stored bests and returns an event per strictly improved record, with the
// solves that produced it. Nothing is persisted here.
func DetectPersonalBests(history []model.Solve, stored map[model.PBKind]int64) []model.PersonalBestEvent {
	if len(history) == 0 {
		return nil
	}
	times := EffectiveTimes(history)
	var events []model.PersonalBestEvent

	if single, idx := BestSingle(history); beats(single, stored, model.PBSingle, len(history)) {
		events = append(events, model.PersonalBestEvent{
			Kind:     model.PBSingle,
			TimeMs:   *single,
			SolveIDs: []int64{history[idx].ID},
		})
	}
	for _, kind := range []model.PBKind{model.PBAo5, model.PBAo12, model.PBAo50, model.PBAo100} {
		n := pbThresholds[kind]
		avg, start := BestAverage(times, n)
		if !beats(avg, stored, kind, len(history)) {
			continue
		}
		ids := make([]int64, 0, n)
		for _, s := range history[start : start+n] {
			ids = append(ids, s.ID)
		}
		events = append(events, model.PersonalBestEvent{Kind: kind, TimeMs: *avg, SolveIDs: ids})
	}
	return events
}

func beats(value *int64, stored map[model.PBKind]int64, kind model.PBKind, solves int) bool {
	if value == nil || solves < pbThresholds[kind] {
		return false
	}
	prev, ok := stored[kind]
	return !ok || *value < prev
}
