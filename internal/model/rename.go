package model

// RuneRange is an inclusive range of code points.
type RuneRange struct {
	From rune `json:"from" yaml:"from"`
	To   rune `json:"to" yaml:"to"`
}

// Contains reports whether r falls in the range.
func (rr RuneRange) Contains(r rune) bool {
	return r >= rr.From && r <= rr.To
}

// DefaultRenameRanges are the code point blocks the protector draws
// generated identifiers from: Latin-1 supplement and extended Latin, Greek
// and Cyrillic.
var DefaultRenameRanges = []RuneRange{
	{From: 0x00C0, To: 0x02AF},
	{From: 0x0370, To: 0x03FF},
	{From: 0x0400, To: 0x04FF},
}
