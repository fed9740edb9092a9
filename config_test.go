package glint

import (
	"strings"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().validate(); err != nil {
		t.Fatalf("DefaultConfig().validate() = %v, want nil", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "zero queue depth",
			mutate:  func(c *Config) { c.QueueDepth = 0 },
			wantErr: "queue_depth must be positive",
		},
		{
			name:    "negative textures",
			mutate:  func(c *Config) { c.MaxTextures = -1 },
			wantErr: "max_textures must be positive",
		},
		{
			name:    "table too small for fallback",
			mutate:  func(c *Config) { c.MaxBatchTextures = 1 },
			wantErr: "max_batch_textures must be at least 2",
		},
		{
			name:    "budget smaller than one batch",
			mutate:  func(c *Config) { c.UploadBudget = InstanceSize },
			wantErr: "cannot hold one full batch",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.validate()
			if err == nil {
				t.Fatal("validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validate() = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	doc := `
queue_depth = 128
max_batch_instances = 64
upload_budget = 1000000
`
	cfg, err := LoadConfig(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.QueueDepth != 128 {
		t.Errorf("QueueDepth = %d, want 128", cfg.QueueDepth)
	}
	if cfg.MaxBatchInstances != 64 {
		t.Errorf("MaxBatchInstances = %d, want 64", cfg.MaxBatchInstances)
	}
	// Fields absent from the document keep defaults.
	if want := DefaultConfig().MaxTextures; cfg.MaxTextures != want {
		t.Errorf("MaxTextures = %d, want default %d", cfg.MaxTextures, want)
	}
}

func TestLoadConfigRejectsUnknownField(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("no_such_knob = 7\n"))
	if err == nil {
		t.Fatal("LoadConfig() = nil, want error for unknown field")
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("queue_depth = -5\n"))
	if err == nil {
		t.Fatal("LoadConfig() = nil, want validation error")
	}
}
