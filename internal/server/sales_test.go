package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	agentdomain "github.com/hotspotid/salesledger/internal/agent/domain"
	"github.com/hotspotid/salesledger/internal/config"
	saledomain "github.com/hotspotid/salesledger/internal/sale/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSaleService struct {
	lastReq saledomain.GetSalesRequest
	resp    saledomain.GetSalesResponse
	err     error
}

func (f *fakeSaleService) GetSales(ctx context.Context, req saledomain.GetSalesRequest) (saledomain.GetSalesResponse, error) {
	_ = ctx
	f.lastReq = req
	return f.resp, f.err
}

type fakeAgentService struct {
	agents []agentdomain.User
}

func (f *fakeAgentService) List(ctx context.Context) ([]agentdomain.User, error) {
	_ = ctx
	return f.agents, nil
}

func (f *fakeAgentService) AgentCodes(ctx context.Context) ([]string, error) {
	_ = ctx
	return nil, nil
}

func newTestServer(salesvc saledomain.Service, agentsvc agentdomain.Service) *Server {
	engine := NewEngine(zap.NewNop())
	return NewServer(ServerParams{
		Gin:      engine,
		Cfg:      config.Config{},
		SaleSvc:  salesvc,
		AgentSvc: agentsvc,
	})
}

func TestListSales_ParsesQuery(t *testing.T) {
	salesvc := &fakeSaleService{
		resp: saledomain.GetSalesResponse{
			Sales: []saledomain.Sale{{
				ID:       "*1",
				IDStamp:  "john01-1564827300",
				SaleDate: time.Date(2019, time.August, 3, 10, 15, 0, 0, time.UTC),
				Name:     "john01",
				AgenCode: "AGEN1",
			}},
		},
	}
	srv := newTestServer(salesvc, &fakeAgentService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/sales?agent_code=AGEN1&year=2019&month=8&day=3&source=remote", nil)
	srv.engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, saledomain.GetSalesRequest{
		AgenCode: "AGEN1",
		Year:     2019,
		Month:    8,
		Day:      3,
		Source:   saledomain.SourceRemote,
	}, salesvc.lastReq)

	var body listSalesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Sales, 1)
	assert.Equal(t, "john01", body.Sales[0].Name)
	assert.False(t, body.Partial)
}

func TestListSales_DefaultsToBoth(t *testing.T) {
	salesvc := &fakeSaleService{}
	srv := newTestServer(salesvc, &fakeAgentService{})

	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sales", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, saledomain.SourceBoth, salesvc.lastReq.Source)

	var body listSalesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotNil(t, body.Sales)
	assert.Empty(t, body.Sales)
}

func TestListSales_BadQuery(t *testing.T) {
	srv := newTestServer(&fakeSaleService{}, &fakeAgentService{})

	for _, target := range []string{
		"/v1/sales?source=weird",
		"/v1/sales?year=abc",
		"/v1/sales?month=13",
		"/v1/sales?day=42",
	} {
		rec := httptest.NewRecorder()
		srv.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestListSales_GatewayUnavailable(t *testing.T) {
	salesvc := &fakeSaleService{err: saledomain.ErrGatewayUnavailable}
	srv := newTestServer(salesvc, &fakeAgentService{})

	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sales?source=remote", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "gateway_unavailable", body.Error.Type)
}

func TestListAgents(t *testing.T) {
	agentsvc := &fakeAgentService{
		agents: []agentdomain.User{
			{ID: 1, UserName: "agent-one", AgenCode: "AGEN1", IsActive: true},
			{ID: 2, UserName: "agent-two", AgenCode: "AGEN2", IsActive: false},
		},
	}
	srv := newTestServer(&fakeSaleService{}, agentsvc)

	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/agents", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Agents []agentView `json:"agents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Agents, 2)
	assert.Equal(t, "AGEN1", body.Agents[0].AgenCode)
	assert.False(t, body.Agents[1].IsActive)
}
