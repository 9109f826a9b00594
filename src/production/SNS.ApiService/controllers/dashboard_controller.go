package controllers

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logger "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Logger"
	store "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Store"
)

const dashboardRecentCount = 10

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
	<title>{{.Server}} dashboard</title>
	<meta http-equiv="refresh" content="10">
</head>
<body>
	<h1>{{.Server}}</h1>
	<p>{{.Total}} readings in history (showing the {{len .Rows}} most recent)</p>
	<table border="1" cellpadding="4">
		<tr><th>Time</th><th>Temperature</th><th>Humidity</th></tr>
		{{range .Rows}}<tr><td>{{.Time}}</td><td>{{.Temperature}}</td><td>{{.Humidity}}</td></tr>
		{{end}}
	</table>
	<p><a href="/api/data">JSON history</a> | <a href="/api/health">health</a></p>
</body>
</html>
`))

// DashboardController renders the HTML view of recent readings
type DashboardController struct {
	history    *store.History
	logger     *logger.Logger
	serverName string
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(history *store.History, logger *logger.Logger, serverName string) *DashboardController {
	return &DashboardController{
		history:    history,
		logger:     logger,
		serverName: serverName,
	}
}

// RegisterRoutes registers the dashboard route with Gin
func (c *DashboardController) RegisterRoutes(router *gin.Engine) {
	router.GET("/dashboard", c.Dashboard)
}

type dashboardRow struct {
	Time        string
	Temperature string
	Humidity    string
}

type dashboardView struct {
	Server string
	Total  int
	Rows   []dashboardRow
}

// Dashboard renders the 10 most recent entries over the current history
func (c *DashboardController) Dashboard(ctx *gin.Context) {
	recent := c.history.Recent(dashboardRecentCount)

	view := dashboardView{
		Server: c.serverName,
		Total:  c.history.Len(),
		Rows:   make([]dashboardRow, 0, len(recent)),
	}
	for _, entry := range recent {
		view.Rows = append(view.Rows, dashboardRow{
			Time:        entry.EntryTime().Format(time.RFC3339),
			Temperature: entry.EntryTemperature(),
			Humidity:    entry.EntryHumidity(),
		})
	}

	ctx.Header("Content-Type", "text/html; charset=utf-8")
	ctx.Status(http.StatusOK)
	if err := dashboardTemplate.Execute(ctx.Writer, view); err != nil {
		c.logger.ErrorWithError(err, "Failed to render dashboard")
	}
}
