// internal/escpos/builder.go
package escpos

import "bytes"

// Builder assembles a ticket byte stream from raw command sequences and
// literal text. Escape byte values pass through untouched; text is appended
// as its raw bytes with no transcoding, so the payload reaches the printhead
// exactly as built.
type Builder struct {
	buf bytes.Buffer
}

// NewBuilder returns a builder whose stream starts with the initialize
// command, resetting any state left over from a previous ticket.
func NewBuilder() *Builder {
	b := &Builder{}
	b.Raw(Commands.Initialize)
	return b
}

// Raw appends a control sequence.
func (b *Builder) Raw(cmd []byte) *Builder {
	b.buf.Write(cmd)
	return b
}

// Text appends literal text without a trailing line feed.
func (b *Builder) Text(s string) *Builder {
	b.buf.WriteString(s)
	return b
}

// Line appends literal text followed by a line feed.
func (b *Builder) Line(s string) *Builder {
	b.buf.WriteString(s)
	b.buf.Write(Commands.LineFeed)
	return b
}

// Feed appends n blank lines.
func (b *Builder) Feed(n int) *Builder {
	for i := 0; i < n; i++ {
		b.buf.Write(Commands.LineFeed)
	}
	return b
}

// Cut appends the full paper cut command.
func (b *Builder) Cut() *Builder {
	return b.Raw(Commands.PaperCut)
}

// Len returns the current stream length in bytes.
func (b *Builder) Len() int {
	return b.buf.Len()
}

// Bytes finalizes the stream into a single byte sequence.
func (b *Builder) Bytes() []byte {
	out := make([]byte, b.buf.Len())
	copy(out, b.buf.Bytes())
	return out
}
