package escpos

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBuilderStartsWithInitialize(t *testing.T) {
	b := NewBuilder()

	out := b.Bytes()
	assert.True(t, bytes.HasPrefix(out, Commands.Initialize))
	assert.Equal(t, len(Commands.Initialize), len(out))
}

func TestBuilderLineAppendsLineFeed(t *testing.T) {
	b := NewBuilder()
	b.Line("hello")

	out := b.Bytes()
	assert.True(t, bytes.HasSuffix(out, append([]byte("hello"), Commands.LineFeed...)))
}

func TestBuilderTextHasNoLineFeed(t *testing.T) {
	b := NewBuilder()
	b.Text("abc")

	out := b.Bytes()
	assert.True(t, bytes.HasSuffix(out, []byte("abc")))
}

func TestBuilderFeed(t *testing.T) {
	b := NewBuilder()
	before := b.Len()
	b.Feed(3)

	assert.Equal(t, before+3, b.Len())
}

func TestBuilderCut(t *testing.T) {
	b := NewBuilder()
	b.Cut()

	assert.True(t, bytes.HasSuffix(b.Bytes(), Commands.PaperCut))
}

func TestBuilderBytesReturnsCopy(t *testing.T) {
	b := NewBuilder()
	b.Line("ticket")

	first := b.Bytes()
	first[0] = 0xFF

	second := b.Bytes()
	assert.Equal(t, Commands.Initialize[0], second[0])
}

func TestCommandOpcodes(t *testing.T) {
	tests := []struct {
		name string
		cmd  []byte
		want []byte
	}{
		{"initialize", Commands.Initialize, []byte{0x1B, 0x40}},
		{"align_left", Commands.AlignLeft, []byte{0x1B, 0x61, 0x00}},
		{"align_center", Commands.AlignCenter, []byte{0x1B, 0x61, 0x01}},
		{"align_right", Commands.AlignRight, []byte{0x1B, 0x61, 0x02}},
		{"bold_on", Commands.BoldOn, []byte{0x1B, 0x45, 0x01}},
		{"bold_off", Commands.BoldOff, []byte{0x1B, 0x45, 0x00}},
		{"double_height", Commands.DoubleHeight, []byte{0x1B, 0x21, 0x10}},
		{"normal_size", Commands.NormalSize, []byte{0x1B, 0x21, 0x00}},
		{"paper_cut", Commands.PaperCut, []byte{0x1D, 0x56, 0x42, 0x00}},
		{"drawer_kick", Commands.DrawerKick, []byte{0x1B, 0x70, 0x00, 0x19, 0xFA}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cmd)
		})
	}
}
