package capture

import "testing"

func TestLoadConfig(t *testing.T) {
	data := []byte(`{"device": "/dev/ttyUSB1", "baud": 921600, "output": "run.trace"}`)

	cfg, err := LoadConfig(data)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Device != "/dev/ttyUSB1" {
		t.Errorf("Expected device /dev/ttyUSB1, got %s", cfg.Device)
	}
	if cfg.Baud != 921600 {
		t.Errorf("Expected baud 921600, got %d", cfg.Baud)
	}
	if cfg.Output != "run.trace" {
		t.Errorf("Expected output run.trace, got %s", cfg.Output)
	}
	if cfg.ReadTimeout != 100 {
		t.Errorf("Expected default read timeout 100, got %d", cfg.ReadTimeout)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig([]byte(`{}`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Device != "/dev/ttyACM0" {
		t.Errorf("Expected default device /dev/ttyACM0, got %s", cfg.Device)
	}
	if cfg.Baud != 115200 {
		t.Errorf("Expected default baud 115200, got %d", cfg.Baud)
	}
	if cfg.Output != "-" {
		t.Errorf("Expected default output -, got %s", cfg.Output)
	}
}

func TestLoadConfigRejectsBadJSON(t *testing.T) {
	if _, err := LoadConfig([]byte(`{device:`)); err == nil {
		t.Error("Expected error for malformed JSON, got nil")
	}
}
