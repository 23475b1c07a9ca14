package workload

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/inference-sim/cpusched/sim"
)

func TestParseText_ValidInput_ParsesAllProcesses(t *testing.T) {
	input := `3
1 0 12 5 4 -1
2 2 6 3 8 -1
3 20 3 -1
`
	specs, err := ParseText(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []sim.ProcessSpec{
		{ID: 1, ArrivalTime: 0, Bursts: []sim.BurstPair{{CPU: 12, IO: sim.IOBurst(5)}, {CPU: 4}}},
		{ID: 2, ArrivalTime: 2, Bursts: []sim.BurstPair{{CPU: 6, IO: sim.IOBurst(3)}, {CPU: 8}}},
		{ID: 3, ArrivalTime: 20, Bursts: []sim.BurstPair{{CPU: 3}}},
	}
	if diff := cmp.Diff(want, specs); diff != "" {
		t.Errorf("ParseText mismatch (-want +got):\n%s", diff)
	}
}

func TestParseText_LineBreaksAreNotSignificant(t *testing.T) {
	specs, err := ParseText(strings.NewReader("2 7 0 3\n-1 5 1\n4 2 1 -1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("expected 2 processes, got %d", len(specs))
	}
	if specs[0].ID != 7 || len(specs[0].Bursts) != 1 {
		t.Errorf("first process: got %+v", specs[0])
	}
	if specs[1].ID != 5 || specs[1].ArrivalTime != 1 || len(specs[1].Bursts) != 2 {
		t.Errorf("second process: got %+v", specs[1])
	}
}

func TestParseText_ExtraInput_Ignored(t *testing.T) {
	specs, err := ParseText(strings.NewReader("1\n1 0 5 -1\n2 0 5 -1\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 1 {
		t.Errorf("expected 1 process, got %d", len(specs))
	}
}

func TestParseText_Malformed_ReturnsError(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"zero count", "0\n"},
		{"huge count with short body", "9000000000000000000\n1 0 3 -1\n"},
		{"negative count", "-2\n"},
		{"non-integer token", "1\n1 0 x -1\n"},
		{"truncated table", "2\n1 0 5 -1\n"},
		{"truncated burst list", "1\n1 0 5 3\n"},
		{"trailing io burst", "1\n1 0 5 3 -1\n"},
		{"no cpu bursts", "1\n1 0 -1\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseText(strings.NewReader(tc.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}
