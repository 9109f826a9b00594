package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	logger "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Logger"
	snsmodels "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Models"
	store "gitlab.com/maplesense1/mpt.sensor_gateway/src/production/SNS.Store"
)

// Raw-text fallback: pull temp=<number> / hum=<number> out of whatever
// the client sent, anywhere in the body.
var (
	tempPattern = regexp.MustCompile(`temp=(-?[0-9]+(?:\.[0-9]+)?)`)
	humPattern  = regexp.MustCompile(`hum=(-?[0-9]+(?:\.[0-9]+)?)`)
)

const ingestHelp = "POST form data (temp=25.5&hum=60.0), JSON ({\"temp\":25.5,\"hum\":60.0}), or plain text containing temp=<n> and hum=<n>"

// DataController handles sensor reading ingestion and history queries
type DataController struct {
	history    *store.History
	logger     *logger.Logger
	serverName string
}

// NewDataController creates a new data controller
func NewDataController(history *store.History, logger *logger.Logger, serverName string) *DataController {
	return &DataController{
		history:    history,
		logger:     logger,
		serverName: serverName,
	}
}

// RegisterRoutes registers the data routes with Gin
func (c *DataController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/data", c.Ingest)
		api.GET("/data", c.GetReadings)
		api.GET("/simple", c.SimpleIngest)
	}
}

// IngestResponse is the acknowledgment for a stored reading
type IngestResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    snsmodels.Reading `json:"data"`
	Count   int               `json:"count"`
	Server  string            `json:"server"`
}

// IngestErrorResponse is returned when request processing itself fails
type IngestErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Help    string `json:"help"`
}

// HistoryResponse carries the full history plus the counters snapshot
type HistoryResponse struct {
	Success bool               `json:"success"`
	Count   int                `json:"count"`
	Data    []snsmodels.Entry  `json:"data"`
	Stats   snsmodels.Counters `json:"stats"`
}

// SimpleIngestResponse acknowledges a query-string ingest
type SimpleIngestResponse struct {
	Received bool                  `json:"received"`
	Data     snsmodels.SimpleEntry `json:"data"`
}

// Ingest accepts a sensor reading as a form body, a JSON body, or raw
// text. Fields that are missing or fail to parse as numbers coerce to
// 0; a sample is never rejected over its values. Only a failure to
// process the request itself (unreadable body, broken form encoding,
// invalid JSON syntax) produces an error response.
func (c *DataController) Ingest(ctx *gin.Context) {
	// Counted before parsing so failed ingests show up in the tallies
	c.history.Touch()

	sample, err := c.parseSample(ctx)
	if err != nil {
		c.logger.ErrorWithError(err, "Failed to process sensor payload")
		ctx.JSON(http.StatusBadRequest, IngestErrorResponse{
			Success: false,
			Error:   err.Error(),
			Help:    ingestHelp,
		})
		return
	}

	now := time.Now().UTC()
	reading := snsmodels.Reading{
		Temperature: sample.temp,
		Humidity:    sample.hum,
		Timestamp:   now,
		ReceivedAt:  now,
		ClientID:    ctx.GetHeader("User-Agent"),
		Source:      snsmodels.SourceHTTP,
	}

	stored, count := c.history.Insert(reading)

	c.logger.Logger.Debug().
		Float64("temperature", stored.Temperature).
		Float64("humidity", stored.Humidity).
		Int("history_len", count).
		Msg("Reading stored")

	ctx.JSON(http.StatusOK, IngestResponse{
		Success: true,
		Message: "Data received successfully",
		Data:    stored,
		Count:   count,
		Server:  c.serverName,
	})
}

// GetReadings returns the full history, most recent first, with the
// counters snapshot
func (c *DataController) GetReadings(ctx *gin.Context) {
	entries, counters := c.history.Snapshot()
	ctx.JSON(http.StatusOK, HistoryResponse{
		Success: true,
		Count:   len(entries),
		Data:    entries,
		Stats:   counters,
	})
}

// SimpleIngest accepts temp/hum as query parameters and stores them
// exactly as received, as strings, with no numeric coercion and no
// history cap. Kept that way for parity with the endpoint's original
// behavior rather than unified with the POST path.
func (c *DataController) SimpleIngest(ctx *gin.Context) {
	entry := snsmodels.SimpleEntry{
		Timestamp:   time.Now().UTC(),
		Temperature: ctx.DefaultQuery("temp", "0"),
		Humidity:    ctx.DefaultQuery("hum", "0"),
		Method:      ctx.Request.Method,
	}

	stored := c.history.InsertUncapped(entry)

	ctx.JSON(http.StatusOK, SimpleIngestResponse{
		Received: true,
		Data:     stored,
	})
}

type sensorSample struct {
	temp float64
	hum  float64
}

// parseSample dispatches on the declared content type. Each branch
// yields the same canonical two-field sample.
func (c *DataController) parseSample(ctx *gin.Context) (sensorSample, error) {
	body, err := ctx.GetRawData()
	if err != nil {
		return sensorSample{}, fmt.Errorf("reading request body: %w", err)
	}

	contentType := ctx.GetHeader("Content-Type")
	switch {
	case strings.Contains(contentType, "application/x-www-form-urlencoded"):
		return parseFormSample(body)
	case strings.Contains(contentType, "application/json"):
		return parseJSONSample(body)
	default:
		return parseTextSample(body), nil
	}
}

func parseFormSample(body []byte) (sensorSample, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return sensorSample{}, fmt.Errorf("parsing form body: %w", err)
	}
	return sensorSample{
		temp: snsmodels.NumberFromString(values.Get("temp")),
		hum:  snsmodels.NumberFromString(values.Get("hum")),
	}, nil
}

func parseJSONSample(body []byte) (sensorSample, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return sensorSample{}, fmt.Errorf("parsing JSON body: %w", err)
	}
	return sensorSample{
		temp: snsmodels.NumberFromValue(payload["temp"]),
		hum:  snsmodels.NumberFromValue(payload["hum"]),
	}, nil
}

func parseTextSample(body []byte) sensorSample {
	text := string(body)
	sample := sensorSample{}
	if m := tempPattern.FindStringSubmatch(text); m != nil {
		sample.temp = snsmodels.NumberFromString(m[1])
	}
	if m := humPattern.FindStringSubmatch(text); m != nil {
		sample.hum = snsmodels.NumberFromString(m[1])
	}
	return sample
}
