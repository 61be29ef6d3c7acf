package entity

// DocumentSequence backs per-year document numbering (PAY-2026-0001 etc).
// One row per (prefix, year); Counter is the last number issued.
type DocumentSequence struct {
	Prefix  string
	Year    int
	Counter int64
}
