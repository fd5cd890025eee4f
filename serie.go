package timeline

type Serie struct {
	Title  string
	Hidden bool

	Keys   Keys
	Data   []Datum
	Style  Style
	Custom []Style
}

func (s Serie) Visible() bool {
	return !s.Hidden
}

func (s Serie) keys(def Keys) Keys {
	if s.Keys.IsZero() {
		return def
	}
	return s.Keys
}

func (s Serie) custom(i int) Style {
	if i < 0 || i >= len(s.Custom) {
		return Style{}
	}
	return s.Custom[i]
}

func titles(series []Serie) []string {
	list := make([]string, 0, len(series))
	for _, s := range series {
		list = append(list, s.Title)
	}
	return list
}
