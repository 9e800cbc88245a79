// Package router maps monitoring targets to the physical store alias
// their readings are written to and read from.
package router

import (
	"github.com/danielgremista/ecoview-server/internal/db"
	"github.com/danielgremista/ecoview-server/internal/telemetry"
)

// StoreTable is the read-only alias table the router consults. It is
// satisfied by *db.Stores.
type StoreTable interface {
	Has(alias string) bool
}

// Router resolves monitoring targets to store aliases against the
// process-wide alias table. The table is fixed at startup, so the
// per-request Has check is cheap and always current.
type Router struct {
	stores StoreTable
}

// NewRouter creates a router over the given alias table.
func NewRouter(stores StoreTable) *Router {
	return &Router{stores: stores}
}

// Resolve returns the alias readings for the target are stored under.
// Targets with a dedicated alias use it when configured and fall back
// to the default alias otherwise; everything else uses the default.
func (r *Router) Resolve(target telemetry.Target) string {
	switch target {
	case telemetry.TargetBrise:
		if r.stores.Has("brise") {
			return "brise"
		}
	case telemetry.TargetPavimentos:
		if r.stores.Has("pavimentos") {
			return "pavimentos"
		}
	}
	return db.DefaultAlias
}

// Related reports whether two targets live in the same physical store.
// Cross-alias pairs are unsupported: ok is false and the answer must
// not be trusted, matching the rule that relations never silently span
// stores.
func (r *Router) Related(a, b telemetry.Target) (related bool, ok bool) {
	aliasA := r.Resolve(a)
	aliasB := r.Resolve(b)
	if aliasA != aliasB {
		return false, false
	}
	return true, true
}
