package controllers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	logger "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Logger"
	snsmodels "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Models"
	store "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Store"
)

// Constrained clients match on this string verbatim for connectivity
// checks; it predates the Go port and must not change.
const testProbeBody = "OK - Node.js API is working!"

// HealthController handles liveness, health, and discovery requests
type HealthController struct {
	history    *store.History
	logger     *logger.Logger
	serverName string
	startedAt  time.Time
}

// NewHealthController creates a new health controller
func NewHealthController(history *store.History, logger *logger.Logger, serverName string) *HealthController {
	return &HealthController{
		history:    history,
		logger:     logger,
		serverName: serverName,
		startedAt:  time.Now().UTC(),
	}
}

// RegisterRoutes registers the health routes with Gin
func (c *HealthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/", c.Root)
	router.GET("/api/test", c.TestProbe)
	router.GET("/api/health", c.Health)
}

// MemorySnapshot is a point-in-time view of process memory usage
type MemorySnapshot struct {
	AllocBytes      uint64 `json:"alloc_bytes"`
	TotalAllocBytes uint64 `json:"total_alloc_bytes"`
	SysBytes        uint64 `json:"sys_bytes"`
	NumGC           uint32 `json:"num_gc"`
}

// HealthResponse is the health probe payload
type HealthResponse struct {
	Status        string             `json:"status"`
	Server        string             `json:"server"`
	Runtime       string             `json:"runtime"`
	UptimeSeconds float64            `json:"uptime"`
	Memory        MemorySnapshot     `json:"memory"`
	Requests      snsmodels.Counters `json:"requests"`
}

// TestProbe returns the fixed plain-text acknowledgment
func (c *HealthController) TestProbe(ctx *gin.Context) {
	ctx.String(http.StatusOK, testProbeBody)
}

// Health reports server status, runtime version, uptime, a memory
// snapshot, and the request counters
func (c *HealthController) Health(ctx *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	ctx.JSON(http.StatusOK, HealthResponse{
		Status:        "ok",
		Server:        c.serverName,
		Runtime:       runtime.Version(),
		UptimeSeconds: time.Since(c.startedAt).Seconds(),
		Memory: MemorySnapshot{
			AllocBytes:      mem.Alloc,
			TotalAllocBytes: mem.TotalAlloc,
			SysBytes:        mem.Sys,
			NumGC:           mem.NumGC,
		},
		Requests: c.history.Counters(),
	})
}

// Root returns a directory of available endpoints with example usage
func (c *HealthController) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": c.serverName + " sensor ingest API",
		"endpoints": gin.H{
			"POST /api/data":  "ingest a reading: curl -d 'temp=25.5&hum=60.0' /api/data",
			"GET /api/data":   "full reading history plus counters",
			"GET /api/test":   "plain-text connectivity probe",
			"GET /api/health": "server health, uptime, memory, counters",
			"GET /api/simple": "query-string ingest: /api/simple?temp=25.5&hum=60.0",
			"GET /dashboard":  "HTML view of the most recent readings",
		},
		"note": "all state is in-memory and resets on restart",
	})
}
