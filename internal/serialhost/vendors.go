// internal/serialhost/vendors.go
package serialhost

// Known thermal-printer and USB-to-serial bridge vendors. Inexpensive
// thermal printers very often enumerate with a generic bridge chip's vendor
// ID rather than a printer brand, so the bridge vendors belong in the
// default filter; over-filtering makes real devices invisible.
var knownVendors = map[uint16]string{
	0x04B8: "Seiko Epson Corporation",
	0x0519: "Citizen Systems",
	0x20D1: "Xprinter",
	0x0FE6: "ICS Advent (generic thermal)",
	0x1FC9: "NXP Semiconductors",
	0x067B: "Prolific (USB-serial bridge)",
	0x10C4: "Silicon Labs (USB-serial bridge)",
	0x0403: "FTDI (USB-serial bridge)",
	0x1A86: "QinHeng Electronics",
	0x2E18: "Generic POS",
}

// DefaultVendorFilter returns the vendor identifiers offered to the chooser
// when no explicit filter is configured.
func DefaultVendorFilter() []uint16 {
	ids := make([]uint16, 0, len(knownVendors))
	for id := range knownVendors {
		ids = append(ids, id)
	}
	return ids
}

// VendorName returns a human-readable vendor name, or empty when unknown.
func VendorName(id uint16) string {
	return knownVendors[id]
}
