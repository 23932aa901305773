package routeros

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hotspotid/salesledger/internal/config"
	saledomain "github.com/hotspotid/salesledger/internal/sale/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(addr string) config.Config {
	return config.Config{
		RouterOSAddress:  addr,
		RouterOSUser:     "api",
		RouterOSPassword: "secret",
		RouterOSTimeout:  5 * time.Second,
	}
}

func TestNew_Unconfigured(t *testing.T) {
	gw := New(config.Config{}, zap.NewNop())
	assert.False(t, gw.Available())

	_, err := gw.Scripts(context.Background(), saledomain.TagDirect, "")
	assert.ErrorIs(t, err, saledomain.ErrGatewayUnavailable)
}

func TestScripts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/system/script", r.URL.Path)
		assert.Equal(t, "mikhmon", r.URL.Query().Get("comment"))
		assert.Equal(t, "aug2019", r.URL.Query().Get("owner"))

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "api", user)
		assert.Equal(t, "secret", pass)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{".id":"*4F","name":"payload-one","comment":"mikhmon","owner":"aug2019"},
			{".id":"*50","name":"payload-two","comment":"mikhmon","owner":"aug2019"}
		]`))
	}))
	defer srv.Close()

	gw := New(testConfig(srv.URL), zap.NewNop())
	require.True(t, gw.Available())

	raws, err := gw.Scripts(context.Background(), saledomain.TagDirect, "aug2019")
	require.NoError(t, err)
	require.Len(t, raws, 2)
	assert.Equal(t, saledomain.RawScript{ID: "*4F", Name: "payload-one"}, raws[0])
	assert.Equal(t, saledomain.RawScript{ID: "*50", Name: "payload-two"}, raws[1])
}

func TestScripts_NoOwnerScope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasOwner := r.URL.Query()["owner"]
		assert.False(t, hasOwner, "unscoped fetch must not send an owner filter")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	gw := New(testConfig(srv.URL), zap.NewNop())
	raws, err := gw.Scripts(context.Background(), saledomain.TagGenerated, "")
	require.NoError(t, err)
	assert.Empty(t, raws)
}

func TestScripts_DeviceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	gw := New(testConfig(srv.URL), zap.NewNop())
	_, err := gw.Scripts(context.Background(), saledomain.TagDirect, "")
	assert.Error(t, err)
}

func TestRemoveScript(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	gw := New(testConfig(srv.URL), zap.NewNop())
	require.NoError(t, gw.RemoveScript(context.Background(), "*4F"))
	assert.Equal(t, "/rest/system/script/*4F", gotPath)
}

func TestRemoveScript_AlreadyGone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	gw := New(testConfig(srv.URL), zap.NewNop())
	assert.NoError(t, gw.RemoveScript(context.Background(), "*4F"))
}
