package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

const sample = `
interval: 15s
limit: 50
script: |
  function double(v, i) return v * 2 end
time_series:
  - series: 'requests{job="demo"}'
    sequence: '1,2,3,...,100'
    transform: double
  - series: load
    realtime: '1,2,4,...'
`

func TestLoad(t *testing.T) {
	is := is.New(t)

	file := filepath.Join(t.TempDir(), "config.yml")
	is.NoErr(os.WriteFile(file, []byte(sample), 0o600))

	root, err := Load(file)
	is.NoErr(err)
	is.Equal(root.IntervalDuration(), 15*time.Second)
	is.Equal(root.Limit, 50)
	is.Equal(len(root.Series), 2)
	is.Equal(root.Series[0], Timeseries{
		Series:    `requests{job="demo"}`,
		Sequence:  "1,2,3,...,100",
		Transform: "double",
	})
	is.Equal(root.Series[1].Realtime, "1,2,4,...")
}

func TestLoadMissingFile(t *testing.T) {
	is := is.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	is.True(os.IsNotExist(err))
}

func TestParseInvalid(t *testing.T) {
	for name, raw := range map[string]string{
		"interval":  "interval: soon",
		"negative":  "interval: -1s",
		"limit":     "interval: 1s\nlimit: -3",
		"series":    "interval: 1s\ntime_series:\n  - sequence: '1,2'",
		"values":    "interval: 1s\ntime_series:\n  - series: up",
		"transform": "interval: 1s\ntime_series:\n  - series: up\n    sequence: '1'\n    transform: f",
		"yaml":      "interval: [",
	} {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)

			_, err := Parse([]byte(raw))
			is.True(err != nil)
		})
	}
}
