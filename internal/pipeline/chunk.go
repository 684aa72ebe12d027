package pipeline

import "strings"

// ChunkKind classifies a Chunk.
type ChunkKind int

// Chunk kinds.
const (
	ChunkText ChunkKind = iota
	ChunkCode
)

// String returns the lower-case name of the kind.
func (k ChunkKind) String() string {
	if k == ChunkCode {
		return "code"
	}
	return "text"
}

// Chunk is a contiguous slice of raw text. Code chunks hold one fence,
// delimiter lines included, and must never be translated.
type Chunk struct {
	Kind    ChunkKind
	Content string
}

// ToChunks splits raw text into Text and Code chunks in a single line pass.
// Line terminators are kept on their lines, so joining the chunk contents in
// order reproduces raw exactly. An unterminated fence becomes a Code chunk
// that runs to end of input.
func ToChunks(raw string) []Chunk {
	var (
		chunks  []Chunk
		pending strings.Builder
		inFence bool
	)

	flush := func(kind ChunkKind) {
		if pending.Len() == 0 {
			return
		}
		chunks = append(chunks, Chunk{Kind: kind, Content: pending.String()})
		pending.Reset()
	}

	for _, line := range strings.SplitAfter(raw, "\n") {
		if line == "" {
			continue
		}

		switch {
		case !inFence && IsFenceOpen(line):
			flush(ChunkText)
			inFence = true
			pending.WriteString(line)
		case inFence && IsFenceClose(line):
			pending.WriteString(line)
			flush(ChunkCode)
			inFence = false
		default:
			pending.WriteString(line)
		}
	}

	if inFence {
		flush(ChunkCode)
	} else {
		flush(ChunkText)
	}
	return chunks
}

// JoinChunks concatenates chunk contents in order.
func JoinChunks(chunks []Chunk) string {
	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(c.Content)
	}
	return b.String()
}
