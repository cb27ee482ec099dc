// Package trace builds the structured JSON dump `-vv --trace-json` writes
// (spec §6, ambient — new relative to the original, which only ever
// printed its verbose output to the terminal). Grounded on the teacher's
// indirect tidwall/gjson and tidwall/sjson dependencies, promoted here to
// direct ones: sjson builds the blob incrementally without a full struct
// marshal, and gjson reads it back, matching the teacher's own preference
// for tidwall's streaming JSON editing over encoding/json struct tags.
package trace

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Builder accumulates a run's tokenized blocks and scheduler waves into one
// JSON document.
type Builder struct {
	json string
}

func NewBuilder() *Builder {
	return &Builder{json: "{}"}
}

// AddBlockTokens records one block's rendered token stream (each entry the
// output of lexer.Token.String(), mirroring the -vv human-readable dump).
// Blocks are appended as {id, tokens} objects under "blocks.-1" (sjson's
// append-to-array form) rather than keyed by id, so a block id containing
// characters meaningful to sjson's dotted path syntax can't corrupt the
// document.
func (b *Builder) AddBlockTokens(id string, tokens []string) error {
	entry := map[string]any{"id": id, "tokens": tokens}
	v, err := sjson.Set(b.json, "blocks.-1", entry)
	if err != nil {
		return fmt.Errorf("trace: recording tokens for block %s: %w", id, err)
	}
	b.json = v
	return nil
}

// AddWave records one scheduler wave (its 0-based index and the block ids
// that ran in it), in the order the DAG scheduler produced them (spec
// §4.6).
func (b *Builder) AddWave(index int, ids []string) error {
	v, err := sjson.Set(b.json, fmt.Sprintf("waves.%d", index), ids)
	if err != nil {
		return fmt.Errorf("trace: recording wave %d: %w", index, err)
	}
	b.json = v
	return nil
}

// JSON returns the accumulated document.
func (b *Builder) JSON() string {
	return b.json
}

// Query reads a single value back out of a previously written trace blob
// (used by tests, and by tooling that round-trips a --trace-json file
// instead of reconstructing the whole document).
func Query(traceJSON, path string) gjson.Result {
	return gjson.Get(traceJSON, path)
}
