package glint

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config fixes every capacity the renderer will ever use. All pools, the
// command queue, and the batcher size their storage once at New and never
// grow; running out of any of them at runtime is fatal. This makes memory
// use fully predictable at the cost of requiring capacities to be chosen
// up front.
type Config struct {
	// MaxPipelines is the render pipeline pool capacity.
	MaxPipelines int `toml:"max_pipelines"`

	// MaxBuffers is the GPU buffer pool capacity.
	MaxBuffers int `toml:"max_buffers"`

	// MaxTextures is the texture pool capacity.
	MaxTextures int `toml:"max_textures"`

	// MaxSamplers is the sampler pool capacity.
	MaxSamplers int `toml:"max_samplers"`

	// MaxArgumentTables is the argument table pool capacity.
	MaxArgumentTables int `toml:"max_argument_tables"`

	// QueueDepth is the command queue capacity in commands per frame.
	QueueDepth int `toml:"queue_depth"`

	// MaxBatchInstances is the soft flush limit of the batcher: submitting
	// an instance when this many are pending flushes first.
	MaxBatchInstances int `toml:"max_batch_instances"`

	// MaxBatchTextures is the number of texture slots in the batcher's
	// argument table, including the slot 0 fallback.
	MaxBatchTextures int `toml:"max_batch_textures"`

	// UploadBudget is the size in bytes of the per-frame instance upload
	// buffer. Every flush in a frame appends to this buffer; exceeding it
	// is fatal.
	UploadBudget int `toml:"upload_budget"`
}

// DefaultConfig returns capacities suitable for a typical 2D scene.
// The upload budget covers four full batches per frame.
func DefaultConfig() Config {
	return Config{
		MaxPipelines:      64,
		MaxBuffers:        256,
		MaxTextures:       256,
		MaxSamplers:       16,
		MaxArgumentTables: 8,
		QueueDepth:        4096,
		MaxBatchInstances: 8192,
		MaxBatchTextures:  16,
		UploadBudget:      8192 * InstanceSize * 4,
	}
}

// validate reports the first nonsensical capacity, if any.
func (c Config) validate() error {
	type field struct {
		name string
		v    int
	}
	for _, f := range []field{
		{"max_pipelines", c.MaxPipelines},
		{"max_buffers", c.MaxBuffers},
		{"max_textures", c.MaxTextures},
		{"max_samplers", c.MaxSamplers},
		{"max_argument_tables", c.MaxArgumentTables},
		{"queue_depth", c.QueueDepth},
		{"max_batch_instances", c.MaxBatchInstances},
		{"max_batch_textures", c.MaxBatchTextures},
		{"upload_budget", c.UploadBudget},
	} {
		if f.v <= 0 {
			return fmt.Errorf("glint: config %s must be positive, got %d", f.name, f.v)
		}
	}
	if c.MaxBatchTextures < 2 {
		return fmt.Errorf("glint: config max_batch_textures must be at least 2 (slot 0 is the fallback texture), got %d", c.MaxBatchTextures)
	}
	if c.UploadBudget < c.MaxBatchInstances*InstanceSize {
		return fmt.Errorf("glint: config upload_budget %d cannot hold one full batch (%d instances need %d bytes)",
			c.UploadBudget, c.MaxBatchInstances, c.MaxBatchInstances*InstanceSize)
	}
	return nil
}

// LoadConfig reads a TOML configuration from r. Fields absent from the
// document keep their DefaultConfig values.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("glint: decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads a TOML configuration from the file at path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("glint: open config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}
