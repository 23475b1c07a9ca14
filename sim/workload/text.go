package workload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cpusched/sim"
)

// ErrMalformed is wrapped by every parse failure of a process description.
var ErrMalformed = errors.New("malformed process description")

// endOfBursts terminates a burst list in the text format.
const endOfBursts = -1

// maxPrealloc bounds the slice capacity taken from an untrusted process count.
const maxPrealloc = 1024

// tokenReader yields whitespace-separated integers and remembers their position.
type tokenReader struct {
	sc  *bufio.Scanner
	pos int
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokenReader{sc: sc}
}

func (tr *tokenReader) next(what string) (int64, error) {
	if !tr.sc.Scan() {
		if err := tr.sc.Err(); err != nil {
			return 0, fmt.Errorf("reading %s: %w", what, err)
		}
		return 0, fmt.Errorf("%w: unexpected end of input, expected %s", ErrMalformed, what)
	}
	tr.pos++
	v, err := strconv.ParseInt(tr.sc.Text(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: token %d (%q) is not an integer %s", ErrMalformed, tr.pos, tr.sc.Text(), what)
	}
	return v, nil
}

// ParseText reads the plain-text process format:
//
//	n
//	pid arrival cpu io cpu io ... cpu -1
//	...
//
// Each process line alternates CPU and I/O durations and ends with -1 in the
// I/O position after its last CPU burst. Line breaks are not significant.
func ParseText(r io.Reader) ([]sim.ProcessSpec, error) {
	tr := newTokenReader(r)
	n, err := tr.next("process count")
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: process count must be positive, got %d", ErrMalformed, n)
	}

	specs := make([]sim.ProcessSpec, 0, min(n, maxPrealloc))
	for i := int64(0); i < n; i++ {
		ps, err := parseProcess(tr)
		if err != nil {
			return nil, fmt.Errorf("process %d of %d: %w", i+1, n, err)
		}
		specs = append(specs, ps)
	}
	if tr.sc.Scan() {
		logrus.Warnf("ignoring input after %d processes, starting at %q", n, tr.sc.Text())
	}
	return specs, nil
}

func parseProcess(tr *tokenReader) (sim.ProcessSpec, error) {
	pid, err := tr.next("process id")
	if err != nil {
		return sim.ProcessSpec{}, err
	}
	arrival, err := tr.next("arrival time")
	if err != nil {
		return sim.ProcessSpec{}, err
	}
	ps := sim.ProcessSpec{ID: int(pid), ArrivalTime: arrival}
	for {
		cpu, err := tr.next("cpu burst")
		if err != nil {
			return ps, err
		}
		if cpu == endOfBursts {
			if len(ps.Bursts) == 0 {
				return ps, fmt.Errorf("%w: pid %d has no cpu bursts", ErrMalformed, pid)
			}
			return ps, fmt.Errorf("%w: pid %d ends with an I/O burst", ErrMalformed, pid)
		}
		io, err := tr.next("io burst")
		if err != nil {
			return ps, err
		}
		if io == endOfBursts {
			ps.Bursts = append(ps.Bursts, sim.BurstPair{CPU: cpu})
			return ps, nil
		}
		ps.Bursts = append(ps.Bursts, sim.BurstPair{CPU: cpu, IO: sim.IOBurst(io)})
	}
}
