package dash

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/midbel/timeline"
)

var ErrIndex = errors.New("invalid index")

// Column selects a field of a record either by its position or by the name
// given in the header.
type Column struct {
	Index int
	Name  string
}

func SelectIndex(i int) Column {
	return Column{Index: i}
}

// NoColumn is used for an optional field that is not given.
func NoColumn() Column {
	return Column{Index: -1}
}

func SelectName(name string) Column {
	return Column{Index: -1, Name: name}
}

// ParseColumn gives a column by index when str is a number, by name otherwise.
func ParseColumn(str string) Column {
	if i, err := strconv.Atoi(str); err == nil {
		return SelectIndex(i)
	}
	return SelectName(str)
}

func (c Column) String() string {
	if c.Name != "" {
		return c.Name
	}
	return strconv.Itoa(c.Index)
}

// resolve gives the position of the column in a record, -1 when the column
// is not used.
func (c Column) resolve(header []string) (int, error) {
	if c.Name == "" {
		if c.Index < 0 {
			return -1, nil
		}
		return c.Index, nil
	}
	for i := range header {
		if strings.EqualFold(strings.TrimSpace(header[i]), c.Name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%s: column not found in header", c.Name)
}

// Columns tells where the start, the end and the label of each bar are found
// in a record.
type Columns struct {
	Start Column
	End   Column
	Label Column
}

func DefaultColumns() Columns {
	return Columns{
		Start: SelectIndex(0),
		End:   SelectIndex(1),
		Label: SelectIndex(2),
	}
}

func (c Columns) IsZero() bool {
	return c == Columns{}
}

type selector struct {
	start int
	end   int
	label int
}

func (c Columns) selector(header []string) (selector, error) {
	if c.IsZero() {
		c = DefaultColumns()
	}
	var (
		sel selector
		err error
	)
	if sel.start, err = c.Start.resolve(header); err != nil {
		return sel, err
	}
	if sel.end, err = c.End.resolve(header); err != nil {
		return sel, err
	}
	if sel.label, err = c.Label.resolve(header); err != nil {
		return sel, err
	}
	return sel, nil
}

// Select builds a datum from a record. Missing fields give missing endpoints.
// The label is optional.
func (s selector) Select(record []string, parse func(string) any) (timeline.Row, error) {
	if s.start >= len(record) && s.end >= len(record) {
		return nil, ErrIndex
	}
	row := timeline.MakeRow(field(record, s.start, parse), field(record, s.end, parse), "")
	if s.label >= 0 && s.label < len(record) {
		row[2] = strings.TrimSpace(record[s.label])
	}
	return row, nil
}

func field(record []string, i int, parse func(string) any) any {
	if i < 0 || i >= len(record) {
		return nil
	}
	return parse(record[i])
}
