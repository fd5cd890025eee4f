package timeline

import (
	"time"
)

type ScalerConstraint interface {
	~string | time.Time
}

type Domain[T ScalerConstraint] interface {
	Diff(T) float64
	Extend() float64
	Values(int) []T
}

type timeDomain struct {
	fst time.Time
	lst time.Time
}

func TimeDomain(f, t time.Time) Domain[time.Time] {
	if f.After(t) {
		f, t = t, f
	}
	return timeDomain{
		fst: f,
		lst: t,
	}
}

func (t timeDomain) Diff(v time.Time) float64 {
	return float64(v.Sub(t.fst))
}

func (t timeDomain) Extend() float64 {
	return float64(t.lst.Sub(t.fst))
}

func (t timeDomain) Values(c int) []time.Time {
	if c <= 0 {
		return []time.Time{t.fst, t.lst}
	}
	var (
		all  = make([]time.Time, c)
		step = t.Extend() / float64(c)
	)
	for i := 0; i < c; i++ {
		all[i] = t.fst.Add(time.Duration(float64(i) * step))
	}
	return append(all, t.lst)
}

type Range struct {
	F float64
	T float64
}

func NewRange(f, t float64) Range {
	return Range{
		F: f,
		T: t,
	}
}

func (r Range) Len() float64 {
	return r.T - r.F
}

func (r Range) Max() float64 {
	return r.T
}

func (r Range) Min() float64 {
	return r.F
}

type Scaler[T ScalerConstraint] interface {
	Scale(T) float64
	Space() float64
	Values(int) []T
	Max() float64
	Min() float64
}

type timeScaler struct {
	Range
	Domain[time.Time]
}

func TimeScaler(dom Domain[time.Time], rg Range) Scaler[time.Time] {
	return timeScaler{
		Range:  rg,
		Domain: dom,
	}
}

func (s timeScaler) Scale(v time.Time) float64 {
	return s.F + s.Diff(v)*s.Space()
}

func (s timeScaler) Space() float64 {
	ext := s.Extend()
	if ext == 0 {
		return 0
	}
	return s.Len() / ext
}

// Ruler holds what the controller needs from the index axis to size bars.
type Ruler struct {
	Start  float64
	End    float64
	Pixels []float64
	Ticks  []float64
}

func (r Ruler) Len() float64 {
	return r.End - r.Start
}

type IndexScaler interface {
	Scaler[string]
	Center(int) float64
	Ruler() Ruler
}

type categoryScaler struct {
	Range
	Strings []string
}

func CategoryScaler(str []string, rg Range) IndexScaler {
	list := make([]string, len(str))
	copy(list, str)
	return categoryScaler{
		Range:   rg,
		Strings: list,
	}
}

func (s categoryScaler) Scale(v string) float64 {
	return s.F + float64(s.index(v))*s.Space()
}

func (s categoryScaler) Center(i int) float64 {
	return s.F + float64(i)*s.Space() + s.Space()/2
}

func (s categoryScaler) Space() float64 {
	if len(s.Strings) == 0 {
		return s.Len()
	}
	return s.Len() / float64(len(s.Strings))
}

func (s categoryScaler) Values(c int) []string {
	if c > 0 && c < len(s.Strings) {
		return s.Strings[:c]
	}
	return s.Strings
}

func (s categoryScaler) Ruler() Ruler {
	r := Ruler{
		Start: s.F,
		End:   s.T,
	}
	for i := range s.Strings {
		c := s.Center(i)
		r.Pixels = append(r.Pixels, c)
		r.Ticks = append(r.Ticks, c)
	}
	return r
}

func (s categoryScaler) index(v string) int {
	for i := range s.Strings {
		if s.Strings[i] == v {
			return i
		}
	}
	return 0
}
