package workload

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/cpusched/sim"
)

// ProcessTable is the YAML form of a process description.
//
//	processes:
//	  - id: 1
//	    arrival: 0
//	    bursts:
//	      - {cpu: 10, io: 4}
//	      - {cpu: 3}
type ProcessTable struct {
	Processes []ProcessEntry `yaml:"processes"`
}

// ProcessEntry describes one process.
type ProcessEntry struct {
	ID      int          `yaml:"id"`
	Arrival int64        `yaml:"arrival"`
	Bursts  []BurstEntry `yaml:"bursts"`
}

// BurstEntry is a CPU burst followed by an optional I/O burst.
type BurstEntry struct {
	CPU int64  `yaml:"cpu"`
	IO  *int64 `yaml:"io,omitempty"`
}

// ParseYAML decodes a YAML process table. Unknown fields are rejected.
func ParseYAML(r io.Reader) ([]sim.ProcessSpec, error) {
	var table ProcessTable
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&table); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return table.Specs(), nil
}

// Specs converts the table to simulator descriptors.
func (t ProcessTable) Specs() []sim.ProcessSpec {
	specs := make([]sim.ProcessSpec, 0, len(t.Processes))
	for _, p := range t.Processes {
		ps := sim.ProcessSpec{ID: p.ID, ArrivalTime: p.Arrival}
		for _, b := range p.Bursts {
			ps.Bursts = append(ps.Bursts, sim.BurstPair{CPU: b.CPU, IO: b.IO})
		}
		specs = append(specs, ps)
	}
	return specs
}

// FromSpecs converts simulator descriptors back to the YAML table form.
func FromSpecs(specs []sim.ProcessSpec) ProcessTable {
	t := ProcessTable{Processes: make([]ProcessEntry, 0, len(specs))}
	for _, ps := range specs {
		e := ProcessEntry{ID: ps.ID, Arrival: ps.ArrivalTime}
		for _, b := range ps.Bursts {
			e.Bursts = append(e.Bursts, BurstEntry{CPU: b.CPU, IO: b.IO})
		}
		t.Processes = append(t.Processes, e)
	}
	return t
}

// LoadFile reads a process description from path and validates it.
// Files ending in .yaml or .yml are parsed as YAML, anything else as text.
func LoadFile(path string) ([]sim.ProcessSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading process file: %w", err)
	}

	var specs []sim.ProcessSpec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		specs, err = ParseYAML(bytes.NewReader(data))
	default:
		specs, err = ParseText(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := sim.ValidateSpecs(specs); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	logrus.Infof("Loaded %d processes from %s", len(specs), path)
	return specs, nil
}
