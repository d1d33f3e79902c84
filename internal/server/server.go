// Package server exposes the application over a JSON HTTP API.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/tabsplit/internal/scanner"
	"github.com/mmynk/tabsplit/internal/service"
)

// Server wires the bill service and receipt scanner into HTTP handlers.
type Server struct {
	svc     *service.BillService
	scanner scanner.Scanner
}

// New creates a Server. The scanner may be nil, in which case the scan
// endpoint reports that scanning is not configured.
func New(svc *service.BillService, sc scanner.Scanner) *Server {
	return &Server{svc: svc, scanner: sc}
}

// Router builds the gin engine with all routes and middleware attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), CORS(), Metrics())

	api := r.Group("/api")
	{
		bills := api.Group("/bills")
		{
			bills.POST("", s.createBill)
			bills.GET("/:ref", s.getBill)
			bills.PATCH("/:ref", s.updateBill)
			bills.GET("/:ref/splits", s.getSplits)
			bills.GET("/:ref/events", s.billEvents)
		}

		api.POST("/participants", s.joinBill)
		api.POST("/claims", s.claimItem)
		api.DELETE("/claims", s.unclaimItem)
		api.POST("/scan", s.scanReceipt)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
