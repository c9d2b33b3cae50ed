// Package keys translates platform key events into X11 keysyms for the RFB
// KeyEvent message, including dead-key composition and legacy keysym shims.
package keys

// Pre-Unicode keysyms (Latin-2/3/4/9, Cyrillic, Greek). Many RFB servers
// only understand these for non-Latin-1 characters, so legacy mode prefers
// them over the 0x01000000 Unicode range.
var legacyPairs = []struct {
	sym Keysym
	r   rune
}{
	// Latin-2
	{0x1a1, 0x0104}, {0x1a2, 0x02d8}, {0x1a3, 0x0141}, {0x1a5, 0x013d},
	{0x1a6, 0x015a}, {0x1a9, 0x0160}, {0x1aa, 0x015e}, {0x1ab, 0x0164},
	{0x1ac, 0x0179}, {0x1ae, 0x017d}, {0x1af, 0x017b}, {0x1b1, 0x0105},
	{0x1b2, 0x02db}, {0x1b3, 0x0142}, {0x1b5, 0x013e}, {0x1b6, 0x015b},
	{0x1b7, 0x02c7}, {0x1b9, 0x0161}, {0x1ba, 0x015f}, {0x1bb, 0x0165},
	{0x1bc, 0x017a}, {0x1bd, 0x02dd}, {0x1be, 0x017e}, {0x1bf, 0x017c},
	{0x1c0, 0x0154}, {0x1c3, 0x0102}, {0x1c5, 0x0139}, {0x1c6, 0x0106},
	{0x1c8, 0x010c}, {0x1ca, 0x0118}, {0x1cc, 0x011a}, {0x1cf, 0x010e},
	{0x1d0, 0x0110}, {0x1d1, 0x0143}, {0x1d2, 0x0147}, {0x1d5, 0x0150},
	{0x1d8, 0x0158}, {0x1d9, 0x016e}, {0x1db, 0x0170}, {0x1de, 0x0162},
	{0x1e0, 0x0155}, {0x1e3, 0x0103}, {0x1e5, 0x013a}, {0x1e6, 0x0107},
	{0x1e8, 0x010d}, {0x1ea, 0x0119}, {0x1ec, 0x011b}, {0x1ef, 0x010f},
	{0x1f0, 0x0111}, {0x1f1, 0x0144}, {0x1f2, 0x0148}, {0x1f5, 0x0151},
	{0x1f8, 0x0159}, {0x1f9, 0x016f}, {0x1fb, 0x0171}, {0x1fe, 0x0163},
	{0x1ff, 0x02d9},
	// Latin-3
	{0x2a1, 0x0126}, {0x2a6, 0x0124}, {0x2a9, 0x0130}, {0x2ab, 0x011e},
	{0x2ac, 0x0134}, {0x2b1, 0x0127}, {0x2b6, 0x0125}, {0x2b9, 0x0131},
	{0x2bb, 0x011f}, {0x2bc, 0x0135}, {0x2c5, 0x010a}, {0x2c6, 0x0108},
	{0x2d5, 0x0120}, {0x2d8, 0x011c}, {0x2dd, 0x016c}, {0x2de, 0x015c},
	{0x2e5, 0x010b}, {0x2e6, 0x0109}, {0x2f5, 0x0121}, {0x2f8, 0x011d},
	{0x2fd, 0x016d}, {0x2fe, 0x015d},
	// Latin-4
	{0x3a2, 0x0138}, {0x3a3, 0x0156}, {0x3a5, 0x0128}, {0x3a6, 0x013b},
	{0x3aa, 0x0112}, {0x3ab, 0x0122}, {0x3ac, 0x0166}, {0x3b3, 0x0157},
	{0x3b5, 0x0129}, {0x3b6, 0x013c}, {0x3ba, 0x0113}, {0x3bb, 0x0123},
	{0x3bc, 0x0167}, {0x3bd, 0x014a}, {0x3bf, 0x014b}, {0x3c0, 0x0100},
	{0x3c7, 0x012e}, {0x3cc, 0x0116}, {0x3cf, 0x012a}, {0x3d1, 0x0145},
	{0x3d2, 0x014c}, {0x3d3, 0x0136}, {0x3d9, 0x0172}, {0x3dd, 0x0168},
	{0x3de, 0x016a}, {0x3e0, 0x0101}, {0x3e7, 0x012f}, {0x3ec, 0x0117},
	{0x3ef, 0x012b}, {0x3f1, 0x0146}, {0x3f2, 0x014d}, {0x3f3, 0x0137},
	{0x3f9, 0x0173}, {0x3fd, 0x0169}, {0x3fe, 0x016b},
	// Latin-9 and currency
	{0x13bc, 0x0152}, {0x13bd, 0x0153}, {0x13be, 0x0178}, {0x20ac, 0x20ac},
	// Cyrillic outside the contiguous block
	{0x6a3, 0x0451}, {0x6b3, 0x0401},
	// Greek final sigma and capital sigma
	{0x7d2, 0x03a3}, {0x7f2, 0x03c3}, {0x7f3, 0x03c2},
}

// cyrillicLower lists the Cyrillic lowercase code points for keysyms
// 0x6c0..0x6df in X11 order. Uppercase is keysym+0x20, code point-0x20.
var cyrillicLower = [32]rune{
	0x044e, 0x0430, 0x0431, 0x0446, 0x0434, 0x0435, 0x0444, 0x0433,
	0x0445, 0x0438, 0x0439, 0x043a, 0x043b, 0x043c, 0x043d, 0x043e,
	0x043f, 0x044f, 0x0440, 0x0441, 0x0442, 0x0443, 0x0436, 0x0432,
	0x044c, 0x044b, 0x0437, 0x0448, 0x044d, 0x0449, 0x0447, 0x044a,
}

var (
	legacyKeysyms = buildLegacy()
	legacyRunes   = invertLegacy(legacyKeysyms)
)

// buildLegacy assembles the code point to legacy keysym table.
func buildLegacy() map[rune]Keysym {
	m := make(map[rune]Keysym, 256)
	for _, p := range legacyPairs {
		m[p.r] = p.sym
	}
	for i, r := range cyrillicLower {
		m[r] = Keysym(0x6c0 + i)
		m[r-0x20] = Keysym(0x6e0 + i)
	}
	// Greek alpha..rho and tau..omega, both cases.
	for i := 0; i <= 0x10; i++ {
		m[rune(0x0391+i)] = Keysym(0x7c1 + i)
		m[rune(0x03b1+i)] = Keysym(0x7e1 + i)
	}
	for i := 0; i <= 5; i++ {
		m[rune(0x03a4+i)] = Keysym(0x7d4 + i)
		m[rune(0x03c4+i)] = Keysym(0x7f4 + i)
	}
	return m
}

// legacyKeysym returns the pre-Unicode keysym for r, if one exists.
func legacyKeysym(r rune) (Keysym, bool) {
	k, ok := legacyKeysyms[r]
	return k, ok
}

// invertLegacy maps each legacy keysym back to its code point.
func invertLegacy(m map[rune]Keysym) map[Keysym]rune {
	out := make(map[Keysym]rune, len(m))
	for r, k := range m {
		out[k] = r
	}
	return out
}

// Rune returns the character a keysym types. Function keys and unassigned
// values report false.
func Rune(k Keysym) (rune, bool) {
	switch {
	case k >= 0x20 && k <= 0x7e, k >= 0xa0 && k <= 0xff:
		return rune(k), true
	case k >= unicodeBase && k <= unicodeBase+0x10ffff:
		return rune(k - unicodeBase), true
	}
	r, ok := legacyRunes[k]
	return r, ok
}
