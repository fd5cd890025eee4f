package timeline

import (
	"math"
	"sort"
	"strings"
	"time"
)

type Unit int

const (
	UnitMillisecond Unit = iota + 1
	UnitSecond
	UnitMinute
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
	UnitQuarter
	UnitYear
)

func ParseUnit(str string) (Unit, bool) {
	switch strings.ToLower(str) {
	case "millisecond", "ms":
		return UnitMillisecond, true
	case "second", "s":
		return UnitSecond, true
	case "minute", "m":
		return UnitMinute, true
	case "hour", "h":
		return UnitHour, true
	case "day", "d":
		return UnitDay, true
	case "week", "w":
		return UnitWeek, true
	case "month":
		return UnitMonth, true
	case "quarter", "q":
		return UnitQuarter, true
	case "year", "y":
		return UnitYear, true
	default:
		return 0, false
	}
}

// DateAdapter converts raw values into time and truncates them to units.
type DateAdapter interface {
	Parse(any, string) (time.Time, bool)
	StartOf(time.Time, Unit) time.Time
	EndOf(time.Time, Unit) time.Time
}

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

type stdAdapter struct {
	loc *time.Location
}

// StdAdapter parses time values in the given location, UTC when nil.
func StdAdapter(loc *time.Location) DateAdapter {
	if loc == nil {
		loc = time.UTC
	}
	return stdAdapter{loc: loc}
}

func (a stdAdapter) Parse(v any, layout string) (time.Time, bool) {
	var t time.Time
	switch v := v.(type) {
	case nil:
		return t, false
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return t, false
		}
		t = *v
	case int:
		t = time.UnixMilli(int64(v))
	case int64:
		t = time.UnixMilli(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return t, false
		}
		t = time.UnixMilli(int64(v))
	case string:
		return a.parseString(strings.TrimSpace(v), layout)
	default:
		return t, false
	}
	if t.IsZero() {
		return t, false
	}
	return t.In(a.loc), true
}

func (a stdAdapter) parseString(str, layout string) (time.Time, bool) {
	if str == "" {
		return time.Time{}, false
	}
	if layout != "" {
		t, err := time.ParseInLocation(layout, str, a.loc)
		return t, err == nil && !t.IsZero()
	}
	for _, y := range layouts {
		if t, err := time.ParseInLocation(y, str, a.loc); err == nil {
			return t, !t.IsZero()
		}
	}
	return time.Time{}, false
}

func (a stdAdapter) StartOf(t time.Time, unit Unit) time.Time {
	t = t.In(a.loc)
	var (
		year, month, day = t.Date()
		hour, min, sec   = t.Clock()
	)
	switch unit {
	case UnitMillisecond:
		return t.Truncate(time.Millisecond)
	case UnitSecond:
		return time.Date(year, month, day, hour, min, sec, 0, a.loc)
	case UnitMinute:
		return time.Date(year, month, day, hour, min, 0, 0, a.loc)
	case UnitHour:
		return time.Date(year, month, day, hour, 0, 0, 0, a.loc)
	case UnitWeek:
		wd := (int(t.Weekday()) + 6) % 7
		return time.Date(year, month, day-wd, 0, 0, 0, 0, a.loc)
	case UnitMonth:
		return time.Date(year, month, 1, 0, 0, 0, 0, a.loc)
	case UnitQuarter:
		q := (int(month)-1)/3*3 + 1
		return time.Date(year, time.Month(q), 1, 0, 0, 0, 0, a.loc)
	case UnitYear:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, a.loc)
	default:
		return time.Date(year, month, day, 0, 0, 0, 0, a.loc)
	}
}

func (a stdAdapter) EndOf(t time.Time, unit Unit) time.Time {
	start := a.StartOf(t, unit)
	var next time.Time
	switch unit {
	case UnitMillisecond:
		next = start.Add(time.Millisecond)
	case UnitSecond:
		next = start.Add(time.Second)
	case UnitMinute:
		next = start.Add(time.Minute)
	case UnitHour:
		next = start.Add(time.Hour)
	case UnitWeek:
		next = start.AddDate(0, 0, 7)
	case UnitMonth:
		next = start.AddDate(0, 1, 0)
	case UnitQuarter:
		next = start.AddDate(0, 3, 0)
	case UnitYear:
		next = start.AddDate(1, 0, 0)
	default:
		next = start.AddDate(0, 0, 1)
	}
	return next.Add(-time.Millisecond)
}

type TimeOptions struct {
	Adapter DateAdapter
	Parser  func(any) (time.Time, bool)
	Format  string
	Unit    Unit
	Round   Unit
	Min     any
	Max     any
	Now     func() time.Time
}

func (o TimeOptions) adapter() DateAdapter {
	if o.Adapter == nil {
		return StdAdapter(nil)
	}
	return o.Adapter
}

func (o TimeOptions) unit() Unit {
	if o.Unit == 0 {
		return UnitDay
	}
	return o.Unit
}

func (o TimeOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// Parse converts a raw endpoint into a time. The second value is false when the
// input is missing or can not be parsed.
func (o TimeOptions) Parse(v any) (time.Time, bool) {
	if v == nil {
		return time.Time{}, false
	}
	var (
		adapter = o.adapter()
		when    time.Time
		ok      bool
	)
	if o.Parser != nil {
		when, ok = o.Parser(v)
	}
	if !ok {
		when, ok = adapter.Parse(v, o.Format)
	}
	if !ok {
		return when, ok
	}
	if o.Round != 0 {
		when = adapter.StartOf(when, o.Round)
	}
	return when, true
}

func (o TimeOptions) ParseInterval(d Datum, keys Keys) Interval {
	var i Interval
	i.Start, i.HasStart = o.Parse(d.Field(keys.Start))
	i.End, i.HasEnd = o.Parse(d.Field(keys.End))
	i.Label = labelOf(d.Field(keys.Label))
	return i.Normalize()
}

type Limits struct {
	Min        time.Time
	Max        time.Time
	Timestamps []time.Time
	// Intervals holds the parsed data of every serie, empty for hidden ones.
	Intervals [][]Interval
}

func (i Limits) Domain() Domain[time.Time] {
	return TimeDomain(i.Min, i.Max)
}

// DetermineLimits computes the bounds of the time axis from both ends of every
// interval of the visible series.
func DetermineLimits(series []Serie, keys Keys, opts TimeOptions) Limits {
	var (
		lim  Limits
		seen = make(map[int64]struct{})
		min  time.Time
		max  time.Time
		some bool
	)
	if keys.IsZero() {
		keys = DefaultKeys()
	}
	lim.Intervals = make([][]Interval, len(series))
	add := func(t time.Time) {
		n := t.UnixNano()
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		lim.Timestamps = append(lim.Timestamps, t)
	}
	for j, s := range series {
		if !s.Visible() {
			continue
		}
		ks := s.keys(keys)
		list := make([]Interval, 0, len(s.Data))
		for _, d := range s.Data {
			i := opts.ParseInterval(d, ks)
			list = append(list, i)
			if i.HasStart {
				if !some || i.Start.Before(min) {
					min = i.Start
				}
				if !some || i.Start.After(max) {
					max = i.Start
				}
				some = true
				add(i.Start)
			}
			if i.HasEnd {
				if !some || i.End.Before(min) {
					min = i.End
				}
				if !some || i.End.After(max) {
					max = i.End
				}
				some = true
				add(i.End)
			}
		}
		lim.Intervals[j] = list
	}
	sort.Slice(lim.Timestamps, func(i, j int) bool {
		return lim.Timestamps[i].Before(lim.Timestamps[j])
	})
	if t, ok := opts.Parse(opts.Min); ok {
		min = t
	}
	if t, ok := opts.Parse(opts.Max); ok {
		max = t
	}
	var (
		adapter = opts.adapter()
		now     = opts.now()
	)
	if min.IsZero() {
		min = adapter.StartOf(now, opts.unit())
	}
	if max.IsZero() {
		max = adapter.EndOf(now, opts.unit()).Add(time.Millisecond)
	}
	lim.Min, lim.Max = min, max
	if max.Before(min) {
		lim.Min = max
	}
	if lo := min.Add(time.Millisecond); max.Before(lo) {
		lim.Max = lo
	}
	return lim
}
