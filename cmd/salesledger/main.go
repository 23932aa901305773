package main

import (
	"github.com/hotspotid/salesledger/internal/agent"
	"github.com/hotspotid/salesledger/internal/config"
	"github.com/hotspotid/salesledger/internal/migration"
	obsmetrics "github.com/hotspotid/salesledger/internal/observability/metrics"
	"github.com/hotspotid/salesledger/internal/routeros"
	"github.com/hotspotid/salesledger/internal/sale"
	"github.com/hotspotid/salesledger/internal/server"
	"github.com/hotspotid/salesledger/pkg/db"
	"github.com/hotspotid/salesledger/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		log.Module,
		db.Module,
		obsmetrics.Module,
		migration.Module,

		// Functional domains
		agent.Module,
		routeros.Module,
		sale.Module,

		server.Module,
	)
	app.Run()
}
