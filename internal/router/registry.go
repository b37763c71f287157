package router

import "github.com/gin-gonic/gin"

// Module is a feature slice (accounts, catalog, cart, orders) that mounts
// its own routes on the shared API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry collects feature modules and mounts them all under /api once
// RegisterAll runs. Group-wide middleware added via Use applies to every
// module registered afterwards.
type Registry struct {
	engine  *gin.Engine
	api     *gin.RouterGroup
	shared  []gin.HandlerFunc
	modules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{
		engine: engine,
		api:    engine.Group("/api"),
	}
}

// Use queues middleware for the whole /api group.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.shared = append(r.shared, mw...)
}

// Add queues a feature module for registration.
func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll applies the shared middleware and mounts every queued module.
func (r *Registry) RegisterAll() {
	if len(r.shared) > 0 {
		r.api.Use(r.shared...)
	}
	for _, m := range r.modules {
		m.Register(r.api)
	}
}
