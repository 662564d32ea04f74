package config

import "go.uber.org/fx"

// Module makes the loaded *Config available to every other module.
var Module = fx.Provide(Load)
