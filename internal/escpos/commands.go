// internal/escpos/commands.go
package escpos

// Commands contains the ESC/POS control sequences used for 58mm receipt
// tickets. Values are the canonical opcodes; many printers recognize nothing
// else, so they must not be altered.
var Commands = struct {
	// Stream control
	Initialize []byte
	LineFeed   []byte

	// Text alignment
	AlignLeft   []byte
	AlignCenter []byte
	AlignRight  []byte

	// Text formatting
	BoldOn       []byte
	BoldOff      []byte
	UnderlineOn  []byte
	UnderlineOff []byte
	DoubleHeight []byte
	NormalSize   []byte

	// Paper
	PaperCut []byte

	// Barcode
	BarcodeHeight []byte
	BarcodeWidth  []byte
	BarcodePrint  []byte

	// Cash drawer
	DrawerKick []byte
}{
	Initialize: []byte{0x1B, 0x40}, // ESC @
	LineFeed:   []byte{0x0A},       // LF

	AlignLeft:   []byte{0x1B, 0x61, 0x00}, // ESC a 0
	AlignCenter: []byte{0x1B, 0x61, 0x01}, // ESC a 1
	AlignRight:  []byte{0x1B, 0x61, 0x02}, // ESC a 2

	BoldOn:       []byte{0x1B, 0x45, 0x01}, // ESC E 1
	BoldOff:      []byte{0x1B, 0x45, 0x00}, // ESC E 0
	UnderlineOn:  []byte{0x1B, 0x2D, 0x01}, // ESC - 1
	UnderlineOff: []byte{0x1B, 0x2D, 0x00}, // ESC - 0
	DoubleHeight: []byte{0x1B, 0x21, 0x10}, // ESC ! 16
	NormalSize:   []byte{0x1B, 0x21, 0x00}, // ESC ! 0

	PaperCut: []byte{0x1D, 0x56, 0x42, 0x00}, // GS V 66 0 (full cut)

	BarcodeHeight: []byte{0x1D, 0x68, 0x50}, // GS h 80
	BarcodeWidth:  []byte{0x1D, 0x77, 0x02}, // GS w 2
	BarcodePrint:  []byte{0x1D, 0x6B},       // GS k + type + data

	DrawerKick: []byte{0x1B, 0x70, 0x00, 0x19, 0xFA}, // ESC p 0 25 250
}
