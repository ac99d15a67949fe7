package context

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"averin-be/pkg/rag/session"
)

// Hit is one ranked search result feeding the context block.
type Hit struct {
	Source     string
	Content    string
	Similarity float64
}

// Block is the assembled grounding context for one generation call.
type Block struct {
	Data         string
	Conversation string
}

// Assembler renders ranked hits plus prior turns into a context block.
// MaxItemChars bounds each hit's content (0 = unbounded); hits are
// already capped in number by the caller's retrieval limit.
type Assembler struct {
	MaxItemChars int
}

func NewAssembler(maxItemChars int) *Assembler {
	return &Assembler{MaxItemChars: maxItemChars}
}

// Assemble returns nil when there are no hits. A nil block tells the
// orchestrator to answer with the fixed fallback and skip generation
// entirely, so nothing is ever paid for an ungrounded call.
func (a *Assembler) Assemble(hits []Hit, history []session.Turn) *Block {
	if len(hits) == 0 {
		return nil
	}

	lines := make([]string, len(hits))
	for i, hit := range hits {
		content := truncate(hit.Content, a.MaxItemChars)
		lines[i] = fmt.Sprintf("- %s (%s)", content, hit.Source)
	}

	return &Block{
		Data:         strings.Join(lines, "\n"),
		Conversation: renderConversation(history),
	}
}

// truncate cuts s to at most max bytes, backing off to the previous rune
// boundary so a multi-byte rune is never split.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func renderConversation(history []session.Turn) string {
	if len(history) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Previous Conversation:\n")
	for i, turn := range history {
		speaker := "Averin"
		if turn.Role == session.RoleUser {
			speaker = "User"
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s: %s", speaker, turn.Content))
	}
	return b.String()
}
