package trace

// Level controls the verbosity of scheduling tracing.
type Level string

const (
	// LevelNone disables tracing (zero overhead).
	LevelNone Level = "none"
	// LevelEvents captures every dispatcher and driver decision.
	LevelEvents Level = "events"
)

// validLevels maps accepted trace level strings.
var validLevels = map[Level]bool{
	LevelNone:   true,
	LevelEvents: true,
	"":          true, // empty defaults to none
}

// IsValidLevel returns true if the given level string is a recognized trace level.
func IsValidLevel(level string) bool {
	return validLevels[Level(level)]
}

// SimulationTrace collects decision records during one policy run.
type SimulationTrace struct {
	Level   Level
	RunID   string
	Records []Record
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(level Level, runID string) *SimulationTrace {
	return &SimulationTrace{
		Level:   level,
		RunID:   runID,
		Records: make([]Record, 0),
	}
}

// Enabled reports whether records are kept. Safe on a nil trace.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Level == LevelEvents
}

// Record appends a decision record, stamping it with the run id.
// It is a no-op when tracing is disabled.
func (st *SimulationTrace) Record(r Record) {
	if !st.Enabled() {
		return
	}
	r.RunID = st.RunID
	st.Records = append(st.Records, r)
}
