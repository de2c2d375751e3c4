package config

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

// YamlConfiguration is a Configuration backed by a flat YAML mapping of
// string keys to string values, e.g.:
//
//	data.dir: ./data
//	writer.ttl.seconds: "300"
//
// It exists alongside Properties for deployments that prefer a YAML
// config file over Java-style properties syntax. Unlike codec.YamlCodec,
// which marshals arbitrary Go values via goccy/go-yaml for wire
// payloads, YamlConfiguration is a key/value store decoded with
// gopkg.in/yaml.v3.
type YamlConfiguration struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewYamlConfiguration creates an empty YamlConfiguration.
func NewYamlConfiguration() *YamlConfiguration {
	return &YamlConfiguration{values: make(map[string]string)}
}

// Load decodes a YAML mapping from r, replacing any previously loaded
// values. This function does not close the reader.
func (y *YamlConfiguration) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	values := make(map[string]string)
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &values); err != nil {
			return err
		}
	}
	y.mu.Lock()
	defer y.mu.Unlock()
	y.values = values
	return nil
}

// Save encodes the current values as a YAML mapping to w. This function
// does not close the writer.
func (y *YamlConfiguration) Save(w io.Writer) error {
	y.mu.RLock()
	data, err := yaml.Marshal(y.values)
	y.mu.RUnlock()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (y *YamlConfiguration) get(k string) (string, bool) {
	y.mu.RLock()
	defer y.mu.RUnlock()
	v, ok := y.values[k]
	return v, ok
}

func (y *YamlConfiguration) put(k, v string) string {
	y.mu.Lock()
	defer y.mu.Unlock()
	ret := y.values[k]
	y.values[k] = v
	return ret
}

// Get returns the string value for k, or defaultVal if absent.
func (y *YamlConfiguration) Get(k, defaultVal string) string {
	if v, ok := y.get(k); ok {
		return v
	}
	return defaultVal
}

// GetAsInt returns the value for k parsed as int, or defaultVal if absent.
func (y *YamlConfiguration) GetAsInt(k string, defaultVal int) (int, error) {
	v, ok := y.get(k)
	if !ok {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

// GetAsInt64 returns the value for k parsed as int64, or defaultVal if absent.
func (y *YamlConfiguration) GetAsInt64(k string, defaultVal int64) (int64, error) {
	v, ok := y.get(k)
	if !ok {
		return defaultVal, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

// GetAsBool returns the value for k parsed as bool, or defaultVal if absent.
func (y *YamlConfiguration) GetAsBool(k string, defaultVal bool) (bool, error) {
	v, ok := y.get(k)
	if !ok {
		return defaultVal, nil
	}
	return strconv.ParseBool(v)
}

// GetAsDecimal returns the value for k parsed as float64, or defaultVal if absent.
func (y *YamlConfiguration) GetAsDecimal(k string, defaultVal float64) (float64, error) {
	v, ok := y.get(k)
	if !ok {
		return defaultVal, nil
	}
	return strconv.ParseFloat(v, 64)
}

// Put sets k to v, returning the previous value for k (empty if absent).
func (y *YamlConfiguration) Put(k, v string) string {
	return y.put(k, v)
}

// PutInt sets k to v, returning the previous value for k parsed as int.
func (y *YamlConfiguration) PutInt(k string, v int) (int, error) {
	old := y.put(k, strconv.Itoa(v))
	if old == "" {
		return 0, nil
	}
	return strconv.Atoi(old)
}

// PutInt64 sets k to v, returning the previous value for k parsed as int64.
func (y *YamlConfiguration) PutInt64(k string, v int64) (int64, error) {
	old := y.put(k, strconv.FormatInt(v, 10))
	if old == "" {
		return 0, nil
	}
	return strconv.ParseInt(old, 10, 64)
}

// PutBool sets k to v, returning the previous value for k parsed as bool.
func (y *YamlConfiguration) PutBool(k string, v bool) (bool, error) {
	old := y.put(k, strconv.FormatBool(v))
	if old == "" {
		return false, nil
	}
	return strconv.ParseBool(old)
}

// PutDecimal sets k to v, returning the previous value for k parsed as float64.
func (y *YamlConfiguration) PutDecimal(k string, v float64) (float64, error) {
	old := y.put(k, fmt.Sprintf("%f", v))
	if old == "" {
		return 0, nil
	}
	return strconv.ParseFloat(old, 64)
}

var _ Configuration = (*YamlConfiguration)(nil)
