package timeline

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

const TypeTimeline = "timeline"

// ScaleFactory computes the limits of the time axis and the scaler mapping
// them to the given range.
type ScaleFactory func([]Serie, Keys, TimeOptions, Range) (Limits, Scaler[time.Time])

type ControllerFactory func(Scaler[time.Time], IndexScaler, Style) Controller

var registry = struct {
	sync.RWMutex
	scales      map[string]ScaleFactory
	controllers map[string]ControllerFactory
}{
	scales:      make(map[string]ScaleFactory),
	controllers: make(map[string]ControllerFactory),
}

func init() {
	RegisterScale(TypeTimeline, timelineScale)
	RegisterController(TypeTimeline, timelineController)
}

// RegisterScale makes a scale available by name. It panics when the name is
// already taken.
func RegisterScale(name string, fn ScaleFactory) {
	registry.Lock()
	defer registry.Unlock()
	if fn == nil {
		panic("timeline: register nil scale " + name)
	}
	if _, ok := registry.scales[name]; ok {
		panic("timeline: register scale twice " + name)
	}
	registry.scales[name] = fn
}

func RegisterController(name string, fn ControllerFactory) {
	registry.Lock()
	defer registry.Unlock()
	if fn == nil {
		panic("timeline: register nil controller " + name)
	}
	if _, ok := registry.controllers[name]; ok {
		panic("timeline: register controller twice " + name)
	}
	registry.controllers[name] = fn
}

func LookupScale(name string) (ScaleFactory, error) {
	registry.RLock()
	defer registry.RUnlock()
	fn, ok := registry.scales[name]
	if !ok {
		return nil, fmt.Errorf("%s: unknown scale", name)
	}
	return fn, nil
}

func LookupController(name string) (ControllerFactory, error) {
	registry.RLock()
	defer registry.RUnlock()
	fn, ok := registry.controllers[name]
	if !ok {
		return nil, fmt.Errorf("%s: unknown controller", name)
	}
	return fn, nil
}

func Scales() []string {
	registry.RLock()
	defer registry.RUnlock()
	var list []string
	for n := range registry.scales {
		list = append(list, n)
	}
	sort.Strings(list)
	return list
}

func timelineScale(series []Serie, keys Keys, opts TimeOptions, rg Range) (Limits, Scaler[time.Time]) {
	lim := DetermineLimits(series, keys, opts)
	return lim, TimeScaler(lim.Domain(), rg)
}

func timelineController(x Scaler[time.Time], y IndexScaler, def Style) Controller {
	return Controller{
		X:        x,
		Y:        y,
		Defaults: def,
	}
}
