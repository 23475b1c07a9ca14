// Package sim provides the discrete-event engine for single-CPU scheduling.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: ProcessSpec (input) and the runtime Process control block
//   - event.go: the three event kinds and their total order
//   - simulator.go: the event loop, dispatch, and burst completion
//
// # Architecture
//
// One Simulator runs one policy over a private copy of the process table.
// FCFS is Round-Robin with an unbounded quantum (FCFSQuantum), so both
// policies share a single dispatcher. Sub-packages sit around the kernel:
//   - sim/workload/: text and YAML process-table loaders
//   - sim/trace/: scheduling decision records and the CSV trace writer
//   - sim/report/: console, table, and YAML renderers for run results
//
// Invariant violations inside a run panic. Bad input and bad configuration
// are returned as errors before any run starts.
package sim
