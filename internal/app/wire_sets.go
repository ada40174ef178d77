//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
)

var CoreInfraSet = wire.NewSet(
	NewLogger,
	NewMetricsRegistry,
	NewMetrics,
	NewConfigLoader,
)

var DirectorySet = wire.NewSet(
	NewDirectoryClient,
	NewBrowserOpener,
	NewGatewayServer,
)

var AppSet = wire.NewSet(
	CoreInfraSet,
	DirectorySet,
	wire.Struct(new(ApplicationOptions), "*"),
	NewApplication,
)
