package sale

import (
	"github.com/hotspotid/salesledger/internal/sale/repository"
	"github.com/hotspotid/salesledger/internal/sale/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sale.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
