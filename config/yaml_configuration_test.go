package config

import (
	"strings"
	"testing"
)

func TestYamlConfiguration_Get(t *testing.T) {
	y := NewYamlConfiguration()
	y.Put("key1", "value1")

	if got := y.Get("key1", ""); got != "value1" {
		t.Errorf("Expected value1, but got %s", got)
	}
	if got := y.Get("missing", "default"); got != "default" {
		t.Errorf("Expected default, but got %s", got)
	}
}

func TestYamlConfiguration_Put(t *testing.T) {
	y := NewYamlConfiguration()

	if old := y.Put("key1", "value1"); old != "" {
		t.Errorf("Expected empty string, but got %s", old)
	}
	if old := y.Put("key1", "value2"); old != "value1" {
		t.Errorf("Expected value1, but got %s", old)
	}
	if got := y.Get("key1", ""); got != "value2" {
		t.Errorf("Expected value2, but got %s", got)
	}
}

func TestYamlConfiguration_Load(t *testing.T) {
	y := NewYamlConfiguration()

	input := strings.NewReader("data.dir: /var/lib/writerpool\nwriter.ttl.seconds: \"300\"\n")
	if err := y.Load(input); err != nil {
		t.Fatalf("Error loading yaml: %s", err.Error())
	}

	if got := y.Get("data.dir", ""); got != "/var/lib/writerpool" {
		t.Errorf("Expected /var/lib/writerpool, but got %s", got)
	}
	ttl, err := y.GetAsInt64("writer.ttl.seconds", 0)
	if err != nil {
		t.Fatalf("Error parsing ttl: %s", err.Error())
	}
	if ttl != 300 {
		t.Errorf("Expected 300, but got %d", ttl)
	}
}

func TestYamlConfiguration_RoundTrip(t *testing.T) {
	y := NewYamlConfiguration()
	y.Put("metrics.addr", ":9090")

	var sb strings.Builder
	if err := y.Save(&sb); err != nil {
		t.Fatalf("Error saving yaml: %s", err.Error())
	}

	reloaded := NewYamlConfiguration()
	if err := reloaded.Load(strings.NewReader(sb.String())); err != nil {
		t.Fatalf("Error reloading yaml: %s", err.Error())
	}
	if got := reloaded.Get("metrics.addr", ""); got != ":9090" {
		t.Errorf("Expected :9090, but got %s", got)
	}
}
