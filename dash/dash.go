package dash

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/midbel/timeline"
	"github.com/midbel/timeline/raster"
	"golang.org/x/sync/errgroup"
)

var (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0

	TimeFormat   = "%Y-%m-%d"
	DefaultPath  = "out.svg"
	DefaultDelim = ","
)

const (
	PosTop    = "top"
	PosRight  = "right"
	PosBottom = "bottom"
	PosLeft   = "left"
)

// Domain configures one axis of the chart. Min, Max, Unit and Round only apply
// to the time axis.
type Domain struct {
	Ticks      int
	Format     string
	Min        string
	Max        string
	Unit       string
	Round      string
	Position   string
	OuterTicks bool
	BandTicks  bool
	Timestamps bool
}

type Config struct {
	Title string
	Type  string
	Path  string

	Width  float64
	Height float64
	Pad    timeline.Padding

	Delimiter  string
	TimeFormat string
	Location   string

	X       Domain
	Y       Domain
	Style   Style
	Tooltip string

	Files  []DataSource
	Client *http.Client
}

func Default() Config {
	cfg := Config{
		Type:       timeline.TypeTimeline,
		Path:       DefaultPath,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Delimiter:  DefaultDelim,
		TimeFormat: TimeFormat,
		Style:      GlobalStyle(),
	}
	cfg.Pad = timeline.Padding{
		Top:    40,
		Right:  20,
		Bottom: 40,
		Left:   120,
	}
	cfg.X.Position = PosBottom
	cfg.Y.Position = PosLeft
	return cfg
}

func (c Config) location() *time.Location {
	if c.Location == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c Config) client() *http.Client {
	if c.Client == nil {
		return http.DefaultClient
	}
	return c.Client
}

// Validate reports every problem found in the configuration.
func (c Config) Validate() error {
	var err error
	if c.Width <= 0 || c.Height <= 0 {
		err = multierror.Append(err, fmt.Errorf("invalid chart size %.0fx%.0f", c.Width, c.Height))
	}
	if c.Pad.Horizontal() >= c.Width || c.Pad.Vertical() >= c.Height {
		err = multierror.Append(err, fmt.Errorf("padding leaves no room to draw"))
	}
	if n := len([]rune(c.Delimiter)); n > 1 {
		err = multierror.Append(err, fmt.Errorf("%s: delimiter should be a single character", c.Delimiter))
	}
	for _, f := range []string{c.TimeFormat, c.X.Format, c.Tooltip} {
		if _, e := parseFormat(f); e != nil {
			err = multierror.Append(err, fmt.Errorf("%s: %w", f, e))
		}
	}
	if c.Location != "" {
		if _, e := time.LoadLocation(c.Location); e != nil {
			err = multierror.Append(err, e)
		}
	}
	for _, u := range []string{c.X.Unit, c.X.Round} {
		if u == "" {
			continue
		}
		if _, ok := timeline.ParseUnit(u); !ok {
			err = multierror.Append(err, fmt.Errorf("%s: unknown time unit", u))
		}
	}
	switch c.X.Position {
	case "", PosTop, PosBottom:
	default:
		err = multierror.Append(err, fmt.Errorf("%s: time axis should be at top or bottom", c.X.Position))
	}
	switch c.Y.Position {
	case "", PosLeft, PosRight:
	default:
		err = multierror.Append(err, fmt.Errorf("%s: rows axis should be at left or right", c.Y.Position))
	}
	if _, e := timeline.LookupScale(c.kind()); e != nil {
		err = multierror.Append(err, e)
	}
	if e := c.Style.Validate(); e != nil {
		err = multierror.Append(err, e)
	}
	if len(c.Files) == 0 {
		err = multierror.Append(err, fmt.Errorf("no data to render"))
	}
	seen := make(map[string]struct{})
	for _, f := range c.Files {
		name := f.Name()
		if name == "" {
			err = multierror.Append(err, fmt.Errorf("data source without name"))
			continue
		}
		if _, ok := seen[name]; ok {
			err = multierror.Append(err, fmt.Errorf("%s: data source defined twice", name))
		}
		seen[name] = struct{}{}
	}
	return err
}

func (c Config) kind() string {
	if c.Type == "" {
		return timeline.TypeTimeline
	}
	return c.Type
}

// Chart loads every data source and builds the chart they are drawn on.
func (c Config) Chart(ctx context.Context) (timeline.Chart, error) {
	ch := timeline.Chart{
		Title:   c.Title,
		Width:   c.Width,
		Height:  c.Height,
		Type:    c.kind(),
		Padding: c.Pad,
	}
	var err error
	if ch.Time, err = c.timeOptions(); err != nil {
		return ch, err
	}
	if ch.Axis, err = c.X.axis(); err != nil {
		return ch, err
	}
	if ch.Rows, err = c.Y.axis(); err != nil {
		return ch, err
	}
	if ch.Defaults, err = c.Style.Style(); err != nil {
		return ch, err
	}
	if c.Tooltip != "" {
		if ch.Tooltip.TimeFormat, err = parseFormat(c.Tooltip); err != nil {
			return ch, err
		}
	}
	ch.Series, err = c.load(ctx)
	return ch, err
}

func (c Config) load(ctx context.Context) ([]timeline.Serie, error) {
	var (
		series   = make([]timeline.Serie, len(c.Files))
		grp, sub = errgroup.WithContext(ctx)
	)
	for i := range c.Files {
		i := i
		grp.Go(func() error {
			s, err := c.Files[i].Load(sub, c)
			if err == nil {
				series[i] = s
			}
			return err
		})
	}
	return series, grp.Wait()
}

func (c Config) timeOptions() (timeline.TimeOptions, error) {
	var (
		opts timeline.TimeOptions
		loc  = c.location()
	)
	opts.Adapter = timeline.StdAdapter(loc)
	if c.X.Unit != "" {
		u, ok := timeline.ParseUnit(c.X.Unit)
		if !ok {
			return opts, fmt.Errorf("%s: unknown time unit", c.X.Unit)
		}
		opts.Unit = u
	}
	if c.X.Round != "" {
		u, ok := timeline.ParseUnit(c.X.Round)
		if !ok {
			return opts, fmt.Errorf("%s: unknown time unit", c.X.Round)
		}
		opts.Round = u
	}
	parse, err := makeParseValue(c.TimeFormat, loc)
	if err != nil {
		return opts, err
	}
	if c.X.Min != "" {
		opts.Min = parse(c.X.Min)
	}
	if c.X.Max != "" {
		opts.Max = parse(c.X.Max)
	}
	return opts, nil
}

func (d Domain) axis() (timeline.AxisStyle, error) {
	style := timeline.AxisStyle{
		Ticks:      d.Ticks,
		Timestamps: d.Timestamps,
		Bands:      d.BandTicks,
		Grid:       d.OuterTicks,
	}
	pos, ok := timeline.ParseOrientation(d.Position)
	if !ok {
		return style, fmt.Errorf("%s: unknown position", d.Position)
	}
	style.Position = pos
	if d.Format != "" {
		format, err := parseFormat(d.Format)
		if err != nil {
			return style, err
		}
		style.Format = format
	}
	return style, nil
}

// Renderer picks the renderer from the extension of the output file.
func Renderer(file string) timeline.Renderer {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png":
		return raster.PNG
	default:
		return timeline.SVG
	}
}

// Render writes the chart to Path or to stdout when Path is empty or "-".
func (c Config) Render(ctx context.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	ch, err := c.Chart(ctx)
	if err != nil {
		return err
	}
	var w io.Writer = os.Stdout
	if c.Path != "" && c.Path != "-" {
		f, err := os.Create(c.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return Renderer(c.Path).Render(w, ch)
}
