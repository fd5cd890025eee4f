package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/midbel/timeline"
	"github.com/midbel/timeline/dash"
	"github.com/midbel/timeline/decode"
	"github.com/urfave/cli/v2"
)

const (
	AppName    = "timeline"
	AppVersion = "0.1.0"
	AppDesc    = "draw timeline charts from start/end pairs"
)

func createCliApp() *cli.App {
	return &cli.App{
		Name:     AppName,
		Version:  AppVersion,
		Usage:    AppDesc,
		Commands: createCommands(),
	}
}

func createCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "draw",
			Usage:     "draw a chart from csv files, one serie per file",
			ArgsUsage: "<file...>",
			Flags:     drawFlags(),
			Action:    runDraw,
		},
		{
			Name:      "build",
			Usage:     "draw the chart described in a configuration file",
			ArgsUsage: "<config>",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{
					Name:    "define",
					Aliases: []string{"D"},
					Usage:   "define a variable (name=value)",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output file, overrides the one of the configuration",
				},
			},
			Action: runBuild,
		},
		{
			Name:      "hit",
			Usage:     "print the tooltip of the bars found at a point of the chart",
			ArgsUsage: "<config>",
			Flags: []cli.Flag{
				&cli.Float64Flag{
					Name:     "x",
					Usage:    "horizontal position in the chart",
					Required: true,
				},
				&cli.Float64Flag{
					Name:  "y",
					Usage: "vertical position in the chart",
				},
				&cli.StringFlag{
					Name:  "mode",
					Value: "point",
					Usage: "interaction mode: point, x or nearest",
				},
			},
			Action: runHit,
		},
		{
			Name:  "types",
			Usage: "list the registered chart types",
			Action: func(c *cli.Context) error {
				for _, n := range timeline.Scales() {
					fmt.Println(n)
				}
				return nil
			},
		},
	}
}

func drawFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "chart title"},
		&cli.StringFlag{Name: "type", Value: timeline.TypeTimeline, Usage: "chart type"},
		&cli.Float64Flag{Name: "width", Value: dash.DefaultWidth, Usage: "chart width"},
		&cli.Float64Flag{Name: "height", Value: dash.DefaultHeight, Usage: "chart height"},
		&cli.StringFlag{Name: "file", Aliases: []string{"o"}, Value: dash.DefaultPath, Usage: "output file (svg or png)"},
		&cli.StringFlag{Name: "timefmt", Value: dash.TimeFormat, Usage: "format of the times in the files"},
		&cli.StringFlag{Name: "delimiter", Value: dash.DefaultDelim, Usage: "field delimiter"},
		&cli.StringFlag{Name: "start", Value: "0", Usage: "column of the start of the bars"},
		&cli.StringFlag{Name: "end", Value: "1", Usage: "column of the end of the bars"},
		&cli.StringFlag{Name: "label", Value: "2", Usage: "column of the label of the bars"},
		&cli.IntFlag{Name: "ticks", Value: 7, Usage: "ticks on the time axis"},
		&cli.StringFlag{Name: "format", Usage: "format of the tick labels"},
		&cli.StringFlag{Name: "unit", Usage: "time unit of the axis"},
		&cli.StringFlag{Name: "min", Usage: "lower bound of the time axis"},
		&cli.StringFlag{Name: "max", Usage: "upper bound of the time axis"},
		&cli.BoolFlag{Name: "timestamps", Usage: "put a tick on each start and end"},
		&cli.BoolFlag{Name: "bands", Usage: "alternate the background of rows"},
		&cli.StringFlag{Name: "palette", Value: dash.PaletteTableau, Usage: "colors of the series"},
		&cli.StringFlag{Name: "tooltip", Usage: "format of the times in tooltips"},
	}
}

func runDraw(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no file given")
	}
	cfg := dash.Default()
	cfg.Title = c.String("title")
	cfg.Type = c.String("type")
	cfg.Width = c.Float64("width")
	cfg.Height = c.Float64("height")
	cfg.Path = c.String("file")
	cfg.TimeFormat = c.String("timefmt")
	cfg.Delimiter = c.String("delimiter")
	cfg.Tooltip = c.String("tooltip")
	cfg.X.Ticks = c.Int("ticks")
	cfg.X.Format = c.String("format")
	cfg.X.Unit = c.String("unit")
	cfg.X.Min = c.String("min")
	cfg.X.Max = c.String("max")
	cfg.X.Timestamps = c.Bool("timestamps")
	cfg.Y.BandTicks = c.Bool("bands")
	cfg.Style.Palette = c.String("palette")

	cols := dash.Columns{
		Start: dash.ParseColumn(c.String("start")),
		End:   dash.ParseColumn(c.String("end")),
		Label: dash.ParseColumn(c.String("label")),
	}
	for _, file := range c.Args().Slice() {
		var src dash.LocalFile
		src.Path = file
		src.Columns = cols
		cfg.Files = append(cfg.Files, src)
	}
	return cfg.Render(c.Context)
}

func runBuild(c *cli.Context) error {
	cfg, err := decodeFile(c)
	if err != nil {
		return err
	}
	if out := c.String("output"); out != "" {
		cfg.Path = out
	}
	return cfg.Render(c.Context)
}

func runHit(c *cli.Context) error {
	cfg, err := decodeFile(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	ch, err := cfg.Chart(c.Context)
	if err != nil {
		return err
	}
	lay, err := ch.Layout()
	if err != nil {
		return err
	}
	var (
		x    = c.Float64("x")
		y    = c.Float64("y")
		bars []timeline.Bar
	)
	switch c.String("mode") {
	case "point":
		bars = lay.At(x, y)
	case "x":
		bars = lay.AtX(x)
	case "nearest":
		if b, ok := lay.Nearest(x, y); ok {
			bars = append(bars, b)
		}
	default:
		return fmt.Errorf("%s: unknown interaction mode", c.String("mode"))
	}
	for i, b := range bars {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(lay.TooltipText(b))
	}
	return nil
}

func decodeFile(c *cli.Context) (*dash.Config, error) {
	if c.NArg() == 0 {
		return nil, fmt.Errorf("no configuration file given")
	}
	r, err := os.Open(c.Args().First())
	if err != nil {
		return nil, err
	}
	defer r.Close()

	dec := decode.NewDecoder(r)
	for _, def := range c.StringSlice("define") {
		name, value, ok := strings.Cut(def, "=")
		if !ok {
			return nil, fmt.Errorf("%s: expected name=value", def)
		}
		dec.Define(name, value)
	}
	return dec.Decode()
}
