package trace

import "testing"

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalRecords != 0 || summary.Dispatches != 0 || summary.MaxSlice != 0 {
		t.Errorf("expected zero summary, got %+v", summary)
	}
	if summary.KindCounts == nil || summary.SlicesByPID == nil {
		t.Error("maps must be initialized")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a round-robin style trace
	st := NewSimulationTrace(LevelEvents, "r")
	st.Record(Record{Clock: 0, PID: 1, Kind: KindArrive})
	st.Record(Record{Clock: 0, PID: 1, Kind: KindDispatch, Slice: 2})
	st.Record(Record{Clock: 1, PID: 2, Kind: KindArrive})
	st.Record(Record{Clock: 2, PID: 1, Kind: KindRequeue})
	st.Record(Record{Clock: 2, PID: 2, Kind: KindDispatch, Slice: 1})
	st.Record(Record{Clock: 3, PID: 2, Kind: KindIOBlock, Wakeup: 9})
	st.Record(Record{Clock: 3, PID: 1, Kind: KindDispatch, Slice: 2})
	st.Record(Record{Clock: 5, PID: 1, Kind: KindExit})
	st.Record(Record{Clock: 5, Kind: KindCPUIdle})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	if summary.TotalRecords != 9 {
		t.Errorf("expected 9 records, got %d", summary.TotalRecords)
	}
	if summary.Dispatches != 3 || summary.Requeues != 1 || summary.IOBlocks != 1 || summary.Exits != 1 || summary.IdlePeriods != 1 {
		t.Errorf("unexpected counts: %+v", summary)
	}
	if summary.MaxSlice != 2 {
		t.Errorf("expected max slice 2, got %d", summary.MaxSlice)
	}
	if got := summary.SlicesByPID[1]; len(got) != 2 || got[0] != 2 || got[1] != 2 {
		t.Errorf("pid 1 slices: got %v, want [2 2]", got)
	}
}
