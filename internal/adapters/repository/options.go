package repository

// Option applies a configuration option to Load.
type Option func(*loadOptions)

type loadOptions struct {
	path string
	raw  []byte
}

// WithDatasetPath reads the dataset from a YAML file instead of the embedded seed.
// An empty path keeps the seed.
func WithDatasetPath(path string) Option {
	return func(o *loadOptions) {
		if path != "" {
			o.path = path
		}
	}
}

// WithDataset decodes the dataset from raw YAML bytes. It wins over WithDatasetPath.
func WithDataset(raw []byte) Option {
	return func(o *loadOptions) {
		if len(raw) > 0 {
			o.raw = raw
		}
	}
}
