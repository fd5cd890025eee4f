package timeline

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTooltipFormat is a short date followed by a long time.
const DefaultTooltipFormat = "01/02/2006 3:04:05 PM"

type TooltipItem struct {
	Serie      Serie
	SerieIndex int
	Index      int
	Interval   Interval
}

type Tooltip struct {
	Title      func(TooltipItem) string
	Label      func(TooltipItem) []string
	TimeFormat string
}

func (t Tooltip) TitleFor(item TooltipItem) string {
	if t.Title != nil {
		return t.Title(item)
	}
	return item.Serie.Title
}

// LabelFor gives the label of the bar followed by both of its ends.
func (t Tooltip) LabelFor(item TooltipItem) []string {
	if t.Label != nil {
		return t.Label(item)
	}
	var (
		iv     = item.Interval
		format = t.format()
		lines  = []string{iv.Label, "", ""}
	)
	if iv.HasStart {
		lines[1] = iv.Start.Format(format)
	}
	if iv.HasEnd {
		lines[2] = iv.End.Format(format)
	}
	return lines
}

func (t Tooltip) Text(item TooltipItem) string {
	var str strings.Builder
	if title := t.TitleFor(item); title != "" {
		str.WriteString(title)
	}
	for _, line := range t.LabelFor(item) {
		if str.Len() > 0 {
			str.WriteString("\n")
		}
		str.WriteString(line)
	}
	return str.String()
}

func (t Tooltip) format() string {
	if t.TimeFormat == "" {
		return DefaultTooltipFormat
	}
	return t.TimeFormat
}

// FormatTime formats t with the display format of the given unit.
func FormatTime(t time.Time, unit Unit) string {
	switch unit {
	case UnitMillisecond:
		return t.Format("3:04:05.000 PM")
	case UnitSecond:
		return t.Format("3:04:05 PM")
	case UnitMinute:
		return t.Format("3:04 PM")
	case UnitHour:
		return t.Format("3PM")
	case UnitWeek:
		return t.Format("Jan 2, 2006")
	case UnitMonth:
		return t.Format("Jan 2006")
	case UnitQuarter:
		q := (int(t.Month())-1)/3 + 1
		return fmt.Sprintf("Q%d - %d", q, t.Year())
	case UnitYear:
		return t.Format("2006")
	default:
		return t.Format("Jan 2")
	}
}
