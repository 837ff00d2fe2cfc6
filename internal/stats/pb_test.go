package stats

import (
	"testing"

	"github.com/verte-zerg/cubetui/internal/model"
)

func eventByKind(events []model.PersonalBestEvent, kind model.PBKind) *model.PersonalBestEvent {
	for i := range events {
		if events[i].Kind == kind {
			return &events[i]
		}
	}
	return nil
}

func TestDetectPersonalBestsFirstSolves(t *testing.T) {
	history := solves(10000, 9000, 8000, 12000, 7000)
	events := DetectPersonalBests(history, nil)

	single := eventByKind(events, model.PBSingle)
	if single == nil || single.TimeMs != 7000 {
		t.Fatalf("single PB = %+v, want 7000", single)
	}
	if len(single.SolveIDs) != 1 || single.SolveIDs[0] != 5 {
		t.Fatalf("single PB solves = %v, want [5]", single.SolveIDs)
	}

	ao5 := eventByKind(events, model.PBAo5)
	if ao5 == nil {
		t.Fatal("no ao5 PB with exactly 5 solves")
	}
	if len(ao5.SolveIDs) != 5 {
		t.Fatalf("ao5 PB solves = %v, want all five", ao5.SolveIDs)
	}

	if got := eventByKind(events, model.PBAo12); got != nil {
		t.Fatalf("ao12 PB with 5 solves = %+v, want none", got)
	}
}

func TestDetectPersonalBestsRequiresStrictImprovement(t *testing.T) {
	history := solves(10000, 9000, 8000, 12000, 7000)
	stored := map[model.PBKind]int64{
		model.PBSingle: 7000,
		model.PBAo5:    9000,
	}
	if events := DetectPersonalBests(history, stored); len(events) != 0 {
		t.Fatalf("equal values produced events: %+v", events)
	}

	stored[model.PBSingle] = 7001
	events := DetectPersonalBests(history, stored)
	if len(events) != 1 || events[0].Kind != model.PBSingle {
		t.Fatalf("events = %+v, want exactly one single PB", events)
	}
}

func TestDetectPersonalBestsEmptyHistory(t *testing.T) {
	if events := DetectPersonalBests(nil, nil); events != nil {
		t.Fatalf("events over empty history = %+v, want nil", events)
	}
}
