package domain

import "context"

// Script tags under which the provisioning scripts file completed sessions.
const (
	TagDirect    = "mikhmon"
	TagGenerated = "mikhgen_sales"
)

// RawScript is an unparsed device-reported script object. Name carries the
// delimited sale payload.
type RawScript struct {
	ID   string
	Name string
}

// ScriptGateway abstracts the device's script storage. Removal of an already
// removed script must be treated as success.
type ScriptGateway interface {
	// Available reports whether gateway credentials are configured.
	Available() bool

	// Scripts fetches raw records filed under tag, optionally scoped to an
	// owner value. An empty owner fetches unscoped.
	Scripts(ctx context.Context, tag, owner string) ([]RawScript, error)

	// RemoveScript deletes a consumed script from the device.
	RemoveScript(ctx context.Context, id string) error
}
