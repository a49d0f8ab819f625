// Package config loads the YAML file describing which series to write.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ghodss/yaml"
)

const DefaultConfigFile = "./config.yml"

type Timeseries struct {
	Series string `json:"series"`
	// Sequence is backfilled in one batch; Realtime is pushed one value
	// per interval. At least one of them must be set.
	Sequence  string `json:"sequence"`
	Realtime  string `json:"realtime"`
	Transform string `json:"transform"`
}

type Root struct {
	Interval string       `json:"interval"`
	Limit    int          `json:"limit"`
	Script   string       `json:"script"`
	Series   []Timeseries `json:"time_series"`

	interval time.Duration
}

// IntervalDuration is the parsed Interval; valid after Load or Validate.
func (r *Root) IntervalDuration() time.Duration {
	return r.interval
}

func Load(file string) (*Root, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Root, error) {
	root := &Root{}
	if err := yaml.Unmarshal(raw, root); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := root.Validate(); err != nil {
		return nil, err
	}
	return root, nil
}

func (r *Root) Validate() error {
	interval, err := time.ParseDuration(r.Interval)
	if err != nil {
		return fmt.Errorf("invalid interval: %w", err)
	}
	if interval <= 0 {
		return errors.New("interval must be positive")
	}
	r.interval = interval

	if r.Limit < 0 {
		return errors.New("limit must not be negative")
	}

	var errs []error
	for i, ts := range r.Series {
		if ts.Series == "" {
			errs = append(errs, fmt.Errorf("time_series[%d]: missing series", i))
		}
		if ts.Sequence == "" && ts.Realtime == "" {
			errs = append(errs, fmt.Errorf("time_series[%d]: one of sequence or realtime is required", i))
		}
		if ts.Transform != "" && r.Script == "" {
			errs = append(errs, fmt.Errorf("time_series[%d]: transform %v needs a script", i, ts.Transform))
		}
	}
	return errors.Join(errs...)
}
