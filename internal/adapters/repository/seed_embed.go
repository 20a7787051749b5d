package repository

import _ "embed"

// Seed contains the embedded default dataset.
//
//go:embed seed.yaml
var Seed []byte
