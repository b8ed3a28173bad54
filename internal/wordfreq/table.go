package wordfreq

import (
	"iter"
	"sort"
	"strings"
)

type Entry struct {
	Token string
	Count int
}

// Table counts token occurrences and remembers the order in which each
// distinct token was first added.
type Table struct {
	index   map[string]int
	entries []Entry
}

func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

func (t *Table) Add(token string) {
	if pos, ok := t.index[token]; ok {
		t.entries[pos].Count++
		return
	}
	t.index[token] = len(t.entries)
	t.entries = append(t.entries, Entry{Token: token, Count: 1})
}

func (t *Table) Count(token string) int {
	pos, ok := t.index[token]
	if !ok {
		return 0
	}
	return t.entries[pos].Count
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the table in first-seen order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Top returns at most k entries ordered by count descending. Equal counts keep
// first-seen order.
func (t *Table) Top(k int) []Entry {
	ranked := t.Entries()
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if k >= 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

type Analyzer interface {
	Tokens(text string) iter.Seq[string]
}

// Count tokenizes every non-blank text independently and accumulates the
// surviving tokens into one table. It also returns how many texts qualified.
func Count(texts []string, analyzer Analyzer) (*Table, int) {
	table := NewTable()
	qualified := 0
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		qualified++
		for token := range analyzer.Tokens(text) {
			table.Add(token)
		}
	}
	return table, qualified
}
