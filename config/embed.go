package config

import _ "embed"

// DefaultConfigYAML configuração padrão embutida no binário
//
//go:embed default.yaml
var DefaultConfigYAML []byte
