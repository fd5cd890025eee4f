package timeline

import (
	"fmt"
	"strconv"
	"time"
)

// Key selects a field of a Datum, either by position or by name.
type Key struct {
	Index int
	Name  string
}

func IndexKey(i int) Key {
	return Key{Index: i}
}

func NameKey(n string) Key {
	return Key{Name: n, Index: -1}
}

func (k Key) String() string {
	if k.Name != "" {
		return k.Name
	}
	return strconv.Itoa(k.Index)
}

type Keys struct {
	Start Key
	End   Key
	Label Key
}

func DefaultKeys() Keys {
	return Keys{
		Start: IndexKey(0),
		End:   IndexKey(1),
		Label: IndexKey(2),
	}
}

func (k Keys) IsZero() bool {
	return k == Keys{}
}

// Datum is one bar of a serie before it is parsed.
type Datum interface {
	Field(Key) any
}

// Row is a datum given as [start, end, label].
type Row []any

func (r Row) Field(k Key) any {
	if k.Index < 0 || k.Index >= len(r) {
		return nil
	}
	return r[k.Index]
}

func MakeRow(start, end any, label string) Row {
	return Row{start, end, label}
}

// Record is a datum given as an object with named fields.
type Record map[string]any

func (r Record) Field(k Key) any {
	if k.Name == "" {
		return r[strconv.Itoa(k.Index)]
	}
	return r[k.Name]
}

type Interval struct {
	Start    time.Time
	End      time.Time
	HasStart bool
	HasEnd   bool
	Label    string
}

// Normalize swaps both ends when they are reversed.
func (i Interval) Normalize() Interval {
	if i.HasStart && i.HasEnd && i.Start.After(i.End) {
		i.Start, i.End = i.End, i.Start
	}
	return i
}

func (i Interval) Valid() bool {
	return i.HasStart && i.HasEnd
}

func (i Interval) Duration() time.Duration {
	if !i.Valid() {
		return 0
	}
	return i.End.Sub(i.Start)
}

func labelOf(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
