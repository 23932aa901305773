package agent

import (
	"github.com/hotspotid/salesledger/internal/agent/repository"
	"github.com/hotspotid/salesledger/internal/agent/service"
	"go.uber.org/fx"
)

var Module = fx.Module("agent.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
