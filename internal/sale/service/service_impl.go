package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hotspotid/salesledger/internal/config"
	obsmetrics "github.com/hotspotid/salesledger/internal/observability/metrics"
	saledomain "github.com/hotspotid/salesledger/internal/sale/domain"
	"github.com/hotspotid/salesledger/internal/sale/parser"

	agentdomain "github.com/hotspotid/salesledger/internal/agent/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Cfg     config.Config
	Repo    saledomain.Repository
	Agents  agentdomain.Service
	Gateway saledomain.ScriptGateway
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    saledomain.Repository
	agents  agentdomain.Service
	gateway saledomain.ScriptGateway
	metrics *obsmetrics.Metrics

	badComments    []string
	exclusionAgent string
}

func New(p Params) saledomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("sale.service"),
		repo:    p.Repo,
		agents:  p.Agents,
		gateway: p.Gateway,
		metrics: p.Metrics,

		badComments:    p.Cfg.BadComments,
		exclusionAgent: p.Cfg.ExclusionAgent,
	}
}

// GetSales returns the unified, deduplicated record set for the requested
// window. Local-sourced records precede remote-sourced ones. A failed remote
// fetch degrades the response to partial instead of failing the request;
// records whose fate is unresolved (save failed, call cancelled) stay on the
// device and are picked up by a later fetch.
func (s *Service) GetSales(ctx context.Context, req saledomain.GetSalesRequest) (saledomain.GetSalesResponse, error) {
	var resp saledomain.GetSalesResponse

	if !req.Source.Valid() {
		return resp, saledomain.ErrInvalidSource
	}
	if req.Source.IncludesRemote() && !s.gateway.Available() {
		return resp, saledomain.ErrGatewayUnavailable
	}

	allowed, err := s.agents.AgentCodes(ctx)
	if err != nil {
		return resp, fmt.Errorf("load agent directory: %w", err)
	}
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, code := range allowed {
		allowedSet[code] = struct{}{}
	}

	if req.Source.IncludesLocal() {
		sales, err := s.repo.Find(ctx, s.db, saledomain.Filter{
			Year:             req.Year,
			Month:            req.Month,
			Day:              req.Day,
			AgenCode:         req.AgenCode,
			AllowedAgenCodes: allowed,
			ExcludeComments:  s.badComments,
		})
		if err != nil {
			return resp, fmt.Errorf("query ledger: %w", err)
		}
		resp.Sales = sales
	}

	if req.Source.IncludesRemote() {
		owner := ownerTag(req.Year, req.Month)
		for _, tag := range []string{saledomain.TagDirect, saledomain.TagGenerated} {
			err := s.ingestStream(ctx, tag, owner, req, allowedSet, &resp)
			if err == nil {
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return resp, err
			}
			s.log.Warn("remote fetch failed, returning partial results",
				zap.String("stream", tag),
				zap.Error(err),
			)
			s.metrics.RecordFetchFailure(ctx, tag)
			resp.Partial = true
			break
		}
	}

	return resp, nil
}

// ingestStream fetches one device stream and runs every raw record through
// parse, filter, persist and remove. Per-record failures never abort the
// batch.
func (s *Service) ingestStream(
	ctx context.Context,
	tag, owner string,
	req saledomain.GetSalesRequest,
	allowedSet map[string]struct{},
	resp *saledomain.GetSalesResponse,
) error {
	raws, err := s.gateway.Scripts(ctx, tag, owner)
	if err != nil {
		return err
	}

	for _, raw := range raws {
		if err := ctx.Err(); err != nil {
			return err
		}

		sale, err := s.parse(tag, raw)
		if err != nil {
			s.log.Debug("skipping unparsable script",
				zap.String("stream", tag),
				zap.String("script_id", raw.ID),
				zap.Error(err),
			)
			continue
		}

		if !s.matchesAgent(tag, sale, req.AgenCode) {
			continue
		}

		// phase 1: persist. Until this succeeds the device copy stays put.
		if err := s.repo.Insert(ctx, s.db, sale); err != nil {
			if errors.Is(err, saledomain.ErrDuplicateSale) {
				s.log.Debug("session already recorded",
					zap.String("id_stamp", sale.IDStamp),
				)
				s.metrics.RecordDuplicate(ctx, tag)
			} else {
				s.log.Warn("ledger save failed, leaving script for a future fetch",
					zap.String("script_id", raw.ID),
					zap.Error(err),
				)
			}
			continue
		}
		s.metrics.RecordIngested(ctx, tag)

		// phase 2: consume the device copy. Best effort; a leftover script
		// only costs a duplicate-save round on the next fetch.
		if err := s.gateway.RemoveScript(ctx, raw.ID); err != nil {
			s.log.Warn("script remove failed",
				zap.String("script_id", raw.ID),
				zap.Error(err),
			)
			s.metrics.RecordRemoveFailure(ctx)
		}

		// owner-tag scoping is only a fetch optimization; the date window is
		// enforced on parsed data
		if !inWindow(sale.SaleDate, req.Year, req.Month, req.Day) {
			continue
		}
		if !allowedAgent(allowedSet, sale.AgenCode) {
			continue
		}
		resp.Sales = append(resp.Sales, *sale)
	}
	return nil
}

func (s *Service) parse(tag string, raw saledomain.RawScript) (*saledomain.Sale, error) {
	if tag == saledomain.TagGenerated {
		return parser.ParseGenerated(raw)
	}
	return parser.ParseDirect(raw)
}

// matchesAgent applies the per-stream agent filter. The direct stream matches
// on comment substring, the generated stream on exact agent-code equality;
// the asymmetry is deliberate and mirrors what the device scripts write.
func (s *Service) matchesAgent(tag string, sale *saledomain.Sale, agenCode string) bool {
	if tag == saledomain.TagGenerated {
		return agenCode == "" || sale.AgenCode == agenCode
	}

	if agenCode != "" && !strings.Contains(sale.Comment, agenCode) {
		return false
	}
	if agenCode == s.exclusionAgent && s.onDenyList(sale.Comment) {
		return false
	}
	return true
}

func (s *Service) onDenyList(comment string) bool {
	for _, bad := range s.badComments {
		if strings.Contains(comment, bad) {
			return true
		}
	}
	return false
}

func allowedAgent(allowedSet map[string]struct{}, code string) bool {
	if code == "" {
		return true
	}
	_, ok := allowedSet[code]
	return ok
}

func inWindow(saleDate time.Time, year, month, day int) bool {
	if year != 0 && saleDate.Year() != year {
		return false
	}
	if month != 0 && int(saleDate.Month()) != month {
		return false
	}
	if day != 0 && saleDate.Day() != day {
		return false
	}
	return true
}

// ownerTag scopes the remote fetch to one month's scripts when the window
// pins both year and month, e.g. "aug2019".
func ownerTag(year, month int) string {
	if year == 0 || month == 0 {
		return ""
	}
	code, ok := saledomain.MonthCodes[time.Month(month)]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s%d", code, year)
}
