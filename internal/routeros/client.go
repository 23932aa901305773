// Package routeros talks to the hotspot device over the RouterOS v7 REST API.
package routeros

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hotspotid/salesledger/internal/config"
	saledomain "github.com/hotspotid/salesledger/internal/sale/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"resty.dev/v3"
)

var Module = fx.Module("routeros.gateway",
	fx.Provide(New),
)

const scriptPath = "/rest/system/script"

// script is the wire shape of a RouterOS script object.
type script struct {
	ID      string `json:".id"`
	Name    string `json:"name"`
	Comment string `json:"comment"`
	Owner   string `json:"owner"`
}

// Client implements the device gateway. A client built without credentials
// stays unavailable; local-only callers never notice.
type Client struct {
	http      *resty.Client
	log       *zap.Logger
	available bool
}

func New(cfg config.Config, log *zap.Logger) saledomain.ScriptGateway {
	c := &Client{log: log.Named("routeros")}
	if !cfg.RouterOSConfigured() {
		log.Info("routeros gateway not configured; remote sourcing disabled")
		return c
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.RouterOSAddress, "/")).
		SetBasicAuth(cfg.RouterOSUser, cfg.RouterOSPassword).
		SetTimeout(cfg.RouterOSTimeout)
	if cfg.RouterOSInsecureTLS {
		rc.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	c.http = rc
	c.available = true
	return c
}

func (c *Client) Available() bool { return c.available }

func (c *Client) Scripts(ctx context.Context, tag, owner string) ([]saledomain.RawScript, error) {
	if !c.available {
		return nil, saledomain.ErrGatewayUnavailable
	}

	var scripts []script
	req := c.http.R().
		SetContext(ctx).
		SetResult(&scripts).
		SetQueryParam("comment", tag)
	if owner != "" {
		req.SetQueryParam("owner", owner)
	}

	resp, err := req.Get(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("fetch scripts: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch scripts: device returned %s", resp.Status())
	}

	raws := make([]saledomain.RawScript, 0, len(scripts))
	for _, s := range scripts {
		raws = append(raws, saledomain.RawScript{ID: s.ID, Name: s.Name})
	}
	return raws, nil
}

func (c *Client) RemoveScript(ctx context.Context, id string) error {
	if !c.available {
		return saledomain.ErrGatewayUnavailable
	}

	resp, err := c.http.R().
		SetContext(ctx).
		Delete(scriptPath + "/" + url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("remove script %s: %w", id, err)
	}
	// a concurrent caller may have removed it already
	if resp.StatusCode() == http.StatusNotFound {
		return nil
	}
	if resp.IsError() {
		return fmt.Errorf("remove script %s: device returned %s", id, resp.Status())
	}
	return nil
}
