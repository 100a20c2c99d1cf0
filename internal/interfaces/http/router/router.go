package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by handlers that attach their routes
// to the versioned API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router collects handlers and mounts them under /api/<version>.
type Router struct {
	engine     *gin.Engine
	version    string
	registrars []RouteRegistrar
}

func NewRouter(engine *gin.Engine, version string) *Router {
	return &Router{
		engine:  engine,
		version: version,
	}
}

// Register queues a registrar for Setup. Calls chain.
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup mounts every queued registrar on the API group.
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.version)

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}
