package router

import "go.uber.org/fx"

// Module registers the HTTP router for the fx runtime.
var Module = fx.Provide(Setup)
