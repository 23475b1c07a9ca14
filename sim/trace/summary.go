package trace

// Summary aggregates statistics from a SimulationTrace.
type Summary struct {
	TotalRecords int
	Dispatches   int
	Requeues     int
	IOBlocks     int
	Exits        int
	IdlePeriods  int // cpu-idle records; one per completed run
	MaxSlice     int64
	KindCounts   map[Kind]int
	// SlicesByPID holds every dispatched slice per process, in dispatch order.
	SlicesByPID map[int][]int64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *Summary {
	summary := &Summary{
		KindCounts:  make(map[Kind]int),
		SlicesByPID: make(map[int][]int64),
	}
	if st == nil {
		return summary
	}

	summary.TotalRecords = len(st.Records)
	for _, r := range st.Records {
		summary.KindCounts[r.Kind]++
		if r.Kind == KindDispatch {
			summary.SlicesByPID[r.PID] = append(summary.SlicesByPID[r.PID], r.Slice)
			if r.Slice > summary.MaxSlice {
				summary.MaxSlice = r.Slice
			}
		}
	}
	summary.Dispatches = summary.KindCounts[KindDispatch]
	summary.Requeues = summary.KindCounts[KindRequeue]
	summary.IOBlocks = summary.KindCounts[KindIOBlock]
	summary.Exits = summary.KindCounts[KindExit]
	summary.IdlePeriods = summary.KindCounts[KindCPUIdle]

	return summary
}
