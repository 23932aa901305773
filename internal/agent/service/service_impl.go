package service

import (
	"context"

	agentdomain "github.com/hotspotid/salesledger/internal/agent/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo agentdomain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo agentdomain.Repository
}

func New(p Params) agentdomain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("agent.service"),
		repo: p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]agentdomain.User, error) {
	return s.repo.ListByRole(ctx, s.db, agentdomain.RoleAgent)
}

func (s *Service) AgentCodes(ctx context.Context) ([]string, error) {
	agents, err := s.repo.ListByRole(ctx, s.db, agentdomain.RoleAgent)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(agents))
	for _, agent := range agents {
		if !agent.IsActive || agent.AgenCode == "" {
			continue
		}
		codes = append(codes, agent.AgenCode)
	}
	return codes, nil
}
