package weather

import (
	"context"
	_ "embed"
	"fmt"
	"math"
	"os"
	"sync/atomic"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/belinwu/WeatherApp/model"
)

//go:embed fixtures/default.yaml
var defaultFixture []byte

type fixtureFile struct {
	Weather      model.Weather                `yaml:"weather"`
	Translations map[string]map[string]string `yaml:"translations"`
}

// Fixture serves weather from a YAML document. Values in the document are
// metric; imperial requests are converted and descriptions are translated
// when the document has a translation for the requested language.
type Fixture struct {
	doc     fixtureFile
	latency time.Duration
	fail    *model.ErrorKind
	calls   atomic.Int64
}

// NewFixture builds the source described by cfg.
func NewFixture(cfg *Config) (*Fixture, error) {
	data := defaultFixture
	if cfg.Fixture != "" {
		var err error
		data, err = os.ReadFile(cfg.Fixture)
		if err != nil {
			return nil, fmt.Errorf("read weather fixture: %w", err)
		}
	}

	f, err := ParseFixture(data)
	if err != nil {
		return nil, err
	}

	f.latency = cfg.Latency
	if cfg.Fail != "" {
		kind, err := model.ParseErrorKind(cfg.Fail)
		if err != nil {
			return nil, fmt.Errorf("weather fail mode: %w", err)
		}
		f.fail = &kind
	}
	return f, nil
}

// ParseFixture decodes a fixture document.
func ParseFixture(data []byte) (*Fixture, error) {
	var doc fixtureFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse weather fixture: %w", err)
	}
	if doc.Weather.IsEmpty() {
		return nil, fmt.Errorf("parse weather fixture: no weather defined")
	}
	return &Fixture{doc: doc}, nil
}

// Calls returns how many fetches have been served.
func (f *Fixture) Calls() int64 {
	return f.calls.Load()
}

func (f *Fixture) FetchWeatherData(ctx context.Context, language string, location model.Location, units string) model.Result[*model.Weather] {
	f.calls.Add(1)

	if f.latency > 0 {
		select {
		case <-time.After(f.latency):
		case <-ctx.Done():
			return model.Failure[*model.Weather](model.ErrorNetworkUnavailable)
		}
	}

	if f.fail != nil {
		return model.Failure[*model.Weather](*f.fail)
	}

	lang, err := model.ParseLanguage(language)
	if err != nil {
		return model.Failure[*model.Weather](model.ErrorClient)
	}
	u, err := model.ParseUnits(units)
	if err != nil {
		return model.Failure[*model.Weather](model.ErrorClient)
	}

	w := f.render(lang, u)
	return model.Success(&w)
}

func (f *Fixture) render(lang model.Language, units model.Units) model.Weather {
	translate := func(s string) string {
		if t, ok := f.doc.Translations[lang.Value()][s]; ok {
			return t
		}
		return s
	}
	temp := func(c float64) float64 {
		if units == model.Imperial {
			return round1(c*9/5 + 32)
		}
		return c
	}
	speed := func(ms float64) float64 {
		if units == model.Imperial {
			return round1(ms * 2.23694)
		}
		return ms
	}

	period := func(in model.Forecast) model.Forecast {
		if in == nil {
			return nil
		}
		out := make(model.Forecast, len(in))
		for i, p := range in {
			p.Temperature = temp(p.Temperature)
			p.Min = temp(p.Min)
			p.Max = temp(p.Max)
			p.Description = translate(p.Description)
			out[i] = p
		}
		return out
	}

	var w model.Weather
	if c := f.doc.Weather.Current; c != nil {
		m := *c
		m.Temperature = temp(m.Temperature)
		m.FeelsLike = temp(m.FeelsLike)
		m.WindSpeed = speed(m.WindSpeed)
		m.Description = translate(m.Description)
		w.Current = &m
	}
	w.Today = period(f.doc.Weather.Today)
	w.Week = period(f.doc.Weather.Week)
	return w
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
