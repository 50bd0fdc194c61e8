package titer

// PairKey identifies one (subject, strain) measurement pair.
type PairKey struct {
	Subject string
	Strain  string
}

// FlagTable holds the four-fold-rise flag per (subject, strain) pair.
// A nil entry means the fold-change value was missing: the flag is
// unknown, not false, and stays nil through every downstream join.
type FlagTable map[PairKey]*bool

// FourFoldFlags filters the long table to fold-change rows and
// thresholds them: fourFC = titer >= log2(4). The boundary value
// counts as a rise.
func FourFoldFlags(long *LongTable) FlagTable {
	flags := make(FlagTable)
	for _, r := range long.Rows {
		if r.Class() != CondFC {
			continue
		}
		key := PairKey{Subject: r.Subject, Strain: r.Strain}
		if r.Titer == nil {
			flags[key] = nil
			continue
		}
		rise := *r.Titer >= FourFoldRise
		flags[key] = &rise
	}
	return flags
}
