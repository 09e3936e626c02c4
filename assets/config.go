package assets

import _ "embed"

// DefaultConfig is the built-in game configuration, overlaid by any
// file passed on the command line.
//
//go:embed default.yaml
var DefaultConfig []byte
