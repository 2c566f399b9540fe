package regfield

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPlanReorderSameOrderIsNoOp(t *testing.T) {
	current := []uint{1, 2, 3, 4}

	changed, err := PlanReorder(current, []uint{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Fatal("identical ordering should report changed=false")
	}
}

func TestPlanReorderDetectsMove(t *testing.T) {
	// dragging B (index 1) to the end of [A,B,C,D] yields [A,C,D,B]
	current := []uint{10, 20, 30, 40}
	requested := []uint{10, 30, 40, 20}

	changed, err := PlanReorder(current, requested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatal("expected changed=true for a real move")
	}
}

func TestPlanReorderRejectsBadSequences(t *testing.T) {
	current := []uint{1, 2, 3}

	cases := []struct {
		name string
		ids  []uint
	}{
		{"missing id", []uint{1, 2}},
		{"extra id", []uint{1, 2, 3, 4}},
		{"unknown id", []uint{1, 2, 9}},
		{"duplicate id", []uint{1, 2, 2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := PlanReorder(current, tc.ids); err == nil {
				t.Fatalf("expected error for %v", tc.ids)
			}
		})
	}
}

func TestReorderedPositionsAreArrayIndexes(t *testing.T) {
	// The persisted display_order values are exactly the indexes of the
	// requested sequence
	requested := []uint{10, 30, 40, 20}

	positions := make(map[uint]int, len(requested))
	for position, id := range requested {
		positions[id] = position
	}

	want := map[uint]int{10: 0, 30: 1, 40: 2, 20: 3}
	if diff := cmp.Diff(want, positions); diff != "" {
		t.Fatalf("position mismatch (-want +got):\n%s", diff)
	}
}
