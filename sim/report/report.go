// Package report renders simulation results for people and tools. It only
// reads sim.RunResult values; nothing here feeds back into the simulation.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/cpusched/sim"
	"github.com/inference-sim/cpusched/sim/trace"
)

// Format selects an output renderer.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

// ValidFormats is the set of recognized output formats.
var ValidFormats = map[Format]bool{FormatText: true, FormatTable: true, FormatYAML: true}

// Write renders results in the given format.
func Write(w io.Writer, format Format, results []*sim.RunResult) error {
	switch format {
	case FormatText, "":
		return WriteText(w, results)
	case FormatTable:
		return WriteTable(w, results)
	case FormatYAML:
		return WriteYAML(w, results)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// Title is the banner printed above a run.
func Title(pc sim.PolicyConfig) string {
	if !pc.Preemptive() {
		return "**** FCFS Scheduling ****"
	}
	return fmt.Sprintf("**** RR Scheduling with q = %d ****", pc.Quantum)
}

// ExitLine is the per-process completion line.
func ExitLine(r sim.ProcessRecord) string {
	return fmt.Sprintf("%d : Process %d exits. Turnaround time = %d (%.0f%%), Wait time = %d",
		r.FinishTime, r.PID, r.TurnaroundTime, r.TurnaroundPercent, r.WaitTime)
}

// WriteText prints every run in console form. When a run carries a trace,
// the trace lines are printed in clock order with the exit lines in place.
func WriteText(w io.Writer, results []*sim.RunResult) error {
	ew := &errWriter{w: w}
	for _, res := range results {
		ew.println(Title(res.Policy))
		if res.Trace.Enabled() {
			byPID := make(map[int]sim.ProcessRecord, len(res.Records))
			for _, r := range res.Records {
				byPID[r.PID] = r
			}
			for _, tr := range res.Trace.Records {
				if tr.Kind == trace.KindExit {
					ew.println(ExitLine(byPID[tr.PID]))
					continue
				}
				ew.println(tr.String())
			}
		} else {
			for _, r := range res.Records {
				ew.println(ExitLine(r))
			}
		}
		s := res.Summary
		ew.println(fmt.Sprintf("Average wait time = %.2f", s.AverageWaitTime))
		ew.println(fmt.Sprintf("Total turnaround time = %d", s.SimulationEnd))
		ew.println(fmt.Sprintf("CPU idle time = %d", s.CPUIdleTime))
		ew.println(fmt.Sprintf("CPU utilization = %.2f%%", s.CPUUtilization))
		ew.println("")
	}
	return ew.err
}

// WriteTable prints one table per run with a summary footer.
func WriteTable(w io.Writer, results []*sim.RunResult) error {
	ew := &errWriter{w: w}
	for _, res := range results {
		ew.println(Title(res.Policy))
		if ew.err != nil {
			return ew.err
		}
		rows := make([][]string, 0, len(res.Records))
		for _, r := range res.Records {
			rows = append(rows, []string{
				strconv.Itoa(r.PID),
				strconv.FormatInt(r.ArrivalTime, 10),
				strconv.FormatInt(r.FinishTime, 10),
				strconv.FormatInt(r.TurnaroundTime, 10),
				strconv.FormatInt(r.TotalRunTime, 10),
				fmt.Sprintf("%.0f%%", r.TurnaroundPercent),
				strconv.FormatInt(r.WaitTime, 10),
			})
		}
		s := res.Summary
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"PID", "Arrival", "Finish", "Turnaround", "Run Time", "Turnaround %", "Wait"})
		table.AppendBulk(rows)
		table.SetFooter([]string{"", "",
			fmt.Sprintf("End\n%d", s.SimulationEnd),
			"",
			fmt.Sprintf("Idle\n%d", s.CPUIdleTime),
			fmt.Sprintf("Utilization\n%.2f%%", s.CPUUtilization),
			fmt.Sprintf("Average\n%.2f", s.AverageWaitTime)})
		table.Render()
		ew.println("")
	}
	return ew.err
}

// RunReport is the YAML form of one run.
type RunReport struct {
	Policy  string              `yaml:"policy"`
	Quantum int64               `yaml:"quantum,omitempty"` // omitted for FCFS
	RunID   string              `yaml:"run_id"`
	Records []sim.ProcessRecord `yaml:"processes"`
	Summary sim.Summary         `yaml:"summary"`
}

// NewRunReport converts a run result to its YAML form.
func NewRunReport(res *sim.RunResult) RunReport {
	rr := RunReport{
		Policy:  res.Policy.Name,
		RunID:   res.RunID,
		Records: res.Records,
		Summary: res.Summary,
	}
	if res.Policy.Preemptive() {
		rr.Quantum = res.Policy.Quantum
	}
	return rr
}

// WriteYAML dumps all runs as a YAML document.
func WriteYAML(w io.Writer, results []*sim.RunResult) error {
	reports := make([]RunReport, 0, len(results))
	for _, res := range results {
		reports = append(reports, NewRunReport(res))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]RunReport{"runs": reports}); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
