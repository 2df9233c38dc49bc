package main

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// opKind names one of the buffer manager operations a scenario step
// drives. Kept as a string rather than an iota so an encoded scenario
// file stays readable and stable across binary rebuilds.
type opKind string

const (
	opAlloc   opKind = "alloc"
	opRead    opKind = "read"
	opUnpin   opKind = "unpin"
	opFlush   opKind = "flush"
	opDispose opKind = "dispose"
)

// step is one operation in a Scenario, msgpack-encoded for the on-disk
// fixture format.
type step struct {
	Op     opKind `msgpack:"op"`
	PageNo uint64 `msgpack:"page_no,omitempty"`
	Dirty  bool   `msgpack:"dirty,omitempty"`
}

// Scenario is a named sequence of buffer manager operations, replayed
// against a single open file by runScenario.
type Scenario struct {
	Name  string `msgpack:"name"`
	Steps []step `msgpack:"steps"`
}

// defaultScenario exercises a hit, a dirty write-back-on-evict, and a
// dispose, against a 2-frame pool — small enough to force an eviction
// within a handful of steps.
func defaultScenario() Scenario {
	return Scenario{
		Name: "default",
		Steps: []step{
			{Op: opAlloc},
			{Op: opAlloc},
			{Op: opUnpin, PageNo: 1, Dirty: false},
			{Op: opRead, PageNo: 1},
			{Op: opUnpin, PageNo: 1, Dirty: true},
			{Op: opAlloc}, // forces an eviction with only 2 frames
			{Op: opFlush},
			{Op: opDispose, PageNo: 2},
		},
	}
}

// loadScenario decodes a msgpack-encoded scenario file.
func loadScenario(path string) (Scenario, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("bufmgrctl: read scenario %s: %w", path, err)
	}
	var sc Scenario
	if err := msgpack.Unmarshal(buf, &sc); err != nil {
		return Scenario{}, fmt.Errorf("bufmgrctl: decode scenario %s: %w", path, err)
	}
	return sc, nil
}

// saveScenario encodes sc as msgpack and writes it to path, used by
// -dump-default to produce a starter fixture a caller can edit.
func saveScenario(path string, sc Scenario) error {
	buf, err := msgpack.Marshal(sc)
	if err != nil {
		return fmt.Errorf("bufmgrctl: encode scenario: %w", err)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("bufmgrctl: write scenario %s: %w", path, err)
	}
	return nil
}
