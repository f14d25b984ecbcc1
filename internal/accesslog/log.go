package accesslog

// Log is an append-only, insertion-ordered operation history.
//
// Log is not safe for concurrent use.
type Log struct {
	entries []Entry
}

// New creates an empty log.
func New() *Log {
	return &Log{}
}

// Append adds an entry to the end of the log.
func (l *Log) Append(e Entry) {
	l.entries = append(l.entries, e)
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the log in insertion order.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Last returns the most recent entry.
func (l *Log) Last() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Averages returns the mean seek and transfer time over the entire log,
// rounded to two decimals. Both are 0 for an empty log.
func (l *Log) Averages() (seek, transfer float64) {
	if len(l.entries) == 0 {
		return 0, 0
	}
	for _, e := range l.entries {
		seek += e.SeekTime
		transfer += e.TransferTime
	}
	n := float64(len(l.entries))
	return Round(seek/n, 2), Round(transfer/n, 2)
}
