package sim

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/cpusched/sim/trace"
)

// FCFSQuantum is the quantum that encodes "never preempt".
const FCFSQuantum int64 = math.MaxInt64

// PolicyConfig selects the scheduling policy for one run.
type PolicyConfig struct {
	Name    string `yaml:"name"`    // "fcfs" or "rr"
	Quantum int64  `yaml:"quantum"` // max ticks per dispatch; FCFSQuantum for fcfs
}

// FCFS returns the first-come-first-served policy.
func FCFS() PolicyConfig {
	return PolicyConfig{Name: "fcfs", Quantum: FCFSQuantum}
}

// RoundRobin returns the round-robin policy with quantum q.
func RoundRobin(q int64) PolicyConfig {
	return PolicyConfig{Name: "rr", Quantum: q}
}

// DefaultPolicies returns the policies run when nothing else is configured:
// FCFS, then Round-Robin with q=10 and q=5.
func DefaultPolicies() []PolicyConfig {
	return []PolicyConfig{FCFS(), RoundRobin(10), RoundRobin(5)}
}

// Preemptive reports whether the quantum can cut a burst short.
func (pc PolicyConfig) Preemptive() bool {
	return pc.Quantum != FCFSQuantum
}

// Validate checks the policy name and quantum.
func (pc PolicyConfig) Validate() error {
	if !ValidPolicies[pc.Name] {
		return fmt.Errorf("unknown policy %q", pc.Name)
	}
	if pc.Quantum <= 0 {
		return fmt.Errorf("policy %q: quantum must be positive, got %d", pc.Name, pc.Quantum)
	}
	if pc.Name == "fcfs" && pc.Quantum != FCFSQuantum {
		return fmt.Errorf("policy fcfs does not take a quantum, got %d", pc.Quantum)
	}
	return nil
}

func (pc PolicyConfig) String() string {
	if !pc.Preemptive() {
		return "FCFS"
	}
	return fmt.Sprintf("RR(q=%d)", pc.Quantum)
}

// ValidPolicies is the set of recognized policy names.
var ValidPolicies = map[string]bool{"fcfs": true, "rr": true}

// SchedulerConfig holds the run configuration, loadable from a YAML file.
//
//	policies:
//	  - name: fcfs
//	  - name: rr
//	    quantum: 10
//	trace: events
type SchedulerConfig struct {
	Policies []PolicyConfig `yaml:"policies"`
	Trace    string         `yaml:"trace"`
}

// LoadSchedulerConfig reads and parses a YAML scheduler configuration file.
// An fcfs entry without a quantum gets FCFSQuantum. An empty policy list
// falls back to DefaultPolicies.
func LoadSchedulerConfig(path string) (*SchedulerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scheduler config: %w", err)
	}
	var cfg SchedulerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scheduler config: %w", err)
	}
	for i := range cfg.Policies {
		cfg.Policies[i].Name = strings.ToLower(strings.TrimSpace(cfg.Policies[i].Name))
		if cfg.Policies[i].Name == "fcfs" && cfg.Policies[i].Quantum == 0 {
			cfg.Policies[i].Quantum = FCFSQuantum
		}
	}
	if len(cfg.Policies) == 0 {
		cfg.Policies = DefaultPolicies()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scheduler config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks every policy and the trace level.
func (c *SchedulerConfig) Validate() error {
	for _, pc := range c.Policies {
		if err := pc.Validate(); err != nil {
			return err
		}
	}
	if !trace.IsValidLevel(c.Trace) {
		return fmt.Errorf("unknown trace level %q", c.Trace)
	}
	return nil
}
