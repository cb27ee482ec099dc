// Package state implements the shared compiler state of spec §5,
// re-architected per the REDESIGN FLAG in spec §9 and SPEC_FULL.md's
// "SUPPLEMENTED FEATURES": parsing touches no shared state at all, and
// only the variables a dependent actually names in its own
// `requires[id[var,...]]` clause cross between blocks, through a per-block
// result mailbox keyed by block id — replacing the original
// compiler.rs/thread_handler.rs design of one mutex guarding the whole
// parse+interpret phase of every block.
package state

import (
	"sort"
	"sync"

	"github.com/blocklang/blocklang/internal/interp"
)

// Mailbox collects each block's final Environment as it finishes, and
// builds the merged inherited Environment a dependent block starts from.
type Mailbox struct {
	mu      sync.Mutex
	results map[string]interp.Environment
}

func NewMailbox() *Mailbox {
	return &Mailbox{results: make(map[string]interp.Environment)}
}

// Publish records id's completed environment. Only access to the mailbox
// map (here and in Collect) is mutex-guarded — the parse/interpret phase
// that produced env already finished running unlocked (spec §9's
// re-architecture).
func (m *Mailbox) Publish(id string, env interp.Environment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[id] = env
}

// Collect builds the Environment a block should start from: for each
// required id (sorted for a deterministic merge order), the exported
// subset named in requires[id[var,...]] — or the whole environment when
// no variable list was given — merged so that a later required id's
// bindings override an earlier one's (spec §3, §4.4).
func (m *Mailbox) Collect(requires map[string][]string) interp.Environment {
	ids := make([]string, 0, len(requires))
	for id := range requires {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	m.mu.Lock()
	defer m.mu.Unlock()
	parents := make([]interp.Environment, 0, len(ids))
	for _, id := range ids {
		full, ok := m.results[id]
		if !ok {
			continue
		}
		parents = append(parents, full.Export(requires[id]))
	}
	return interp.Merge(parents...)
}
