package main

import (
	"os"
	"strings"
	"time"

	"oss.nandlabs.io/writerpool/config"
)

// daemonConfig is the set of knobs writerpoold reads from its properties
// file. Unset keys fall back to the defaults below.
type daemonConfig struct {
	DataDir       string
	TTL           time.Duration
	SweepInterval time.Duration
	MetricsAddr   string
}

func defaultConfig() daemonConfig {
	return daemonConfig{
		DataDir:       "./data",
		TTL:           5 * time.Minute,
		SweepInterval: 30 * time.Second,
		MetricsAddr:   ":9090",
	}
}

// loadConfig reads a config file at path (if present) on top of the
// defaults. A missing file is not an error: the daemon runs with
// defaults, matching config.Properties' own "default if absent" idiom.
// A path ending in .yaml or .yml is read as config.YamlConfiguration;
// anything else is read as Java-style config.Properties.
func loadConfig(path string) (daemonConfig, error) {
	cfg := defaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()

	var src config.Configuration
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		src = config.NewYamlConfiguration()
	} else {
		src = config.NewProperties()
	}
	if err := src.Load(f); err != nil {
		return cfg, err
	}

	cfg.DataDir = src.Get("data.dir", cfg.DataDir)
	cfg.MetricsAddr = src.Get("metrics.addr", cfg.MetricsAddr)

	if ttlSecs, err := src.GetAsInt64("writer.ttl.seconds", int64(cfg.TTL/time.Second)); err == nil {
		cfg.TTL = time.Duration(ttlSecs) * time.Second
	}
	if sweepSecs, err := src.GetAsInt64("sweep.interval.seconds", int64(cfg.SweepInterval/time.Second)); err == nil {
		cfg.SweepInterval = time.Duration(sweepSecs) * time.Second
	}

	return cfg, nil
}
