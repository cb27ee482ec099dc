// Package block implements the block splitter and dependency-metadata
// extractor of spec §4.1: cutting whole source text into named,
// brace-delimited regions and parsing each region's `requires[...]`
// clause.
package block

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blocklang/blocklang/internal/cerrors"
	"github.com/blocklang/blocklang/internal/lexer"
)

// Block is a single `block <id> [requires[...]] { ... }` region: its id,
// the ids (and optionally imported variable names) it requires, and its
// raw, unparsed body text.
type Block struct {
	ID       string
	Requires map[string][]string // required block id -> imported variable names (nil/empty slice = whole block)
	Body     string
}

var headerPattern = regexp.MustCompile(`(?s)block\s+([A-Za-z_][A-Za-z0-9_]*)\s*(?:requires\s*\[(.*?)\])?\s*\{`)
var reqItemPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)(?:\s*\[\s*(.*?)\s*\])?`)

// Split cuts source text into Blocks. Each block's body runs from just
// after its opening `{` to the matching `}`, found by brace-depth
// counting starting at depth 1 (spec §4.1).
func Split(source string) ([]Block, error) {
	matches := headerPattern.FindAllStringSubmatchIndex(source, -1)
	var blocks []Block
	for _, m := range matches {
		headerEnd := m[1]
		id := source[m[2]:m[3]]

		var reqStr string
		if m[4] != -1 {
			reqStr = source[m[4]:m[5]]
		}

		body, consumed, err := extractBody(source[headerEnd:])
		if err != nil {
			return nil, err
		}

		requires, err := parseRequires(reqStr)
		if err != nil {
			return nil, err
		}

		blocks = append(blocks, Block{ID: id, Requires: requires, Body: strings.TrimSpace(body)})
		_ = consumed
	}
	return blocks, nil
}

// extractBody scans rest (the text immediately following a block's
// opening `{`) character-by-character, counting brace depth starting at
// 1, and returns the body text up to (not including) the matching `}`.
func extractBody(rest string) (body string, consumed int, err error) {
	depth := 1
	for i, ch := range rest {
		switch ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return rest[:i], i + 1, nil
			}
		}
	}
	return "", 0, cerrors.New(cerrors.UnmatchedBraces, "unmatched braces in block")
}

// parseRequires parses a `requires[...]` interior: a comma-separated list
// of `<id>` or `<id>[<var>, <var>, ...]` items (spec §4.1, §6).
func parseRequires(reqStr string) (map[string][]string, error) {
	requires := map[string][]string{}
	reqStr = strings.TrimSpace(reqStr)
	if reqStr == "" {
		return requires, nil
	}
	for _, m := range reqItemPattern.FindAllStringSubmatch(reqStr, -1) {
		if m[1] == "" {
			continue
		}
		id := m[1]
		var vars []string
		if strings.TrimSpace(m[2]) != "" {
			for _, v := range strings.Split(m[2], ",") {
				vars = append(vars, strings.TrimSpace(v))
			}
		}
		requires[id] = vars
	}
	return requires, nil
}

// TokenBlock is a Block whose body has already been tokenized (spec §3).
// Identity is by ID alone: two TokenBlocks with the same ID collide.
type TokenBlock struct {
	ID       string
	Requires map[string][]string
	Tokens   []lexer.Token
}

// Tokenize turns the split Blocks into a map of TokenBlocks keyed by ID,
// rejecting duplicate ids (spec §4.1, §7).
func Tokenize(blocks []Block) (map[string]TokenBlock, error) {
	result := make(map[string]TokenBlock, len(blocks))
	for _, b := range blocks {
		if _, exists := result[b.ID]; exists {
			return nil, cerrors.New(cerrors.DuplicateBlockID, fmt.Sprintf("duplicate block id: %s", b.ID))
		}
		tokens, err := lexer.Tokenize(b.Body)
		if err != nil {
			if lexErr, ok := err.(*lexer.Error); ok {
				return nil, cerrors.FromLexError(lexErr)
			}
			return nil, err
		}
		result[b.ID] = TokenBlock{ID: b.ID, Requires: b.Requires, Tokens: tokens}
	}
	return result, nil
}
