package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const envConfigFile = "POKEDEX_CONFIG"

// fileConfig is the YAML form of the options. Values from the file sit below
// environment variables and flags.
type fileConfig struct {
	BaseURL         *string `yaml:"base_url"`
	PageSize        *int    `yaml:"page_size"`
	HardLimit       *int    `yaml:"hard_limit"`
	Concurrency     *int    `yaml:"concurrency"`
	RequestInterval *string `yaml:"request_interval"`
	Timeout         *string `yaml:"timeout"`
	Preview         *bool   `yaml:"preview"`
	Width           *int    `yaml:"width"`
	Height          *int    `yaml:"height"`
	Footer          *bool   `yaml:"footer"`
	Trace           *bool   `yaml:"trace"`
	LogFile         *string `yaml:"log_file"`
}

// configPath finds the config file named by -config or POKEDEX_CONFIG. The
// flag wins.
func configPath(args []string, env map[string]string) string {
	path := env[envConfigFile]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if name != "config" {
			continue
		}
		if hasValue {
			path = value
		} else if i+1 < len(args) {
			path = args[i+1]
			i++
		}
	}
	return strings.TrimSpace(path)
}

func readConfigFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

// applyFile fills env with file values for keys the environment leaves unset.
func applyFile(env map[string]string, fc fileConfig) {
	set := func(key, value string) {
		if _, ok := env[key]; !ok {
			env[key] = value
		}
	}
	if fc.BaseURL != nil {
		set(envBaseURL, *fc.BaseURL)
	}
	if fc.PageSize != nil {
		set(envPageSize, strconv.Itoa(*fc.PageSize))
	}
	if fc.HardLimit != nil {
		set(envHardLimit, strconv.Itoa(*fc.HardLimit))
	}
	if fc.Concurrency != nil {
		set(envConcurrency, strconv.Itoa(*fc.Concurrency))
	}
	if fc.RequestInterval != nil {
		set(envRequestInterval, *fc.RequestInterval)
	}
	if fc.Timeout != nil {
		set(envTimeout, *fc.Timeout)
	}
	if fc.Preview != nil {
		set(envPreview, strconv.FormatBool(*fc.Preview))
	}
	if fc.Width != nil {
		set(envWidth, strconv.Itoa(*fc.Width))
	}
	if fc.Height != nil {
		set(envHeight, strconv.Itoa(*fc.Height))
	}
	if fc.Footer != nil {
		set(envShowFooter, strconv.FormatBool(*fc.Footer))
	}
	if fc.Trace != nil {
		set(envTrace, strconv.FormatBool(*fc.Trace))
	}
	if fc.LogFile != nil {
		set(envLogFile, *fc.LogFile)
	}
}
