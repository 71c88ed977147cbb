package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"log/slog"

	"github.com/fleetscore/server/config"
	"github.com/fleetscore/server/internal/database"
	apihttp "github.com/fleetscore/server/internal/http"
	"github.com/fleetscore/server/internal/http/handlers"
	"github.com/fleetscore/server/pkg/client"
	"github.com/fleetscore/server/pkg/platform"
	"github.com/fleetscore/server/pkg/platform/aggregates"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func toJson(t *testing.T, s any) []byte {
	t.Helper()
	result, err := json.Marshal(s)
	assert.NoError(t, err, "fail to marshal to json")
	return result
}

func fromJson(t *testing.T, s any, data []byte) {
	t.Helper()
	err := json.Unmarshal(data, s)
	assert.NoError(t, err, "fail to unmarshal to json data %s", string(data))
}

func readBody(t *testing.T, body io.ReadCloser) []byte {
	b, err := io.ReadAll(body)
	defer body.Close()
	assert.NoError(t, err)
	return b
}

type testCase struct {
	url            string
	expectedStatus int
	method         string
	payload        any
	body           string
}

var baseURL = "http://127.0.0.1:10000"
var httpClient = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

func testHTTP(t *testing.T, c testCase, result any) {
	t.Helper()
	var reqBody io.Reader
	if c.payload != nil {
		reqBody = bytes.NewBuffer(toJson(t, c.payload))
	}
	request, err := http.NewRequest(
		c.method,
		fmt.Sprintf("%s%s", baseURL, c.url),
		reqBody)
	assert.NoError(t, err)
	if c.payload != nil {
		request.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}
	response, err := httpClient.Do(request)
	assert.NoError(t, err)
	body := readBody(t, response.Body)
	assert.Equal(t, response.StatusCode, c.expectedStatus, string(body))
	if result != nil {
		fromJson(t, result, body)
	}
	if c.body != "" {
		assert.Contains(t, string(body), c.body)
	}
}

func registerPayload(name string, healthy bool) client.RegisterServiceInput {
	if healthy {
		return client.RegisterServiceInput{
			Name: name,
			Team: "platform",
			SLOs: []client.SLO{
				{Name: "availability", TargetPct: 99.9, CurrentPct: 99.95},
			},
			CostEntries: []client.CostEntry{
				{Label: "july", Amount: 400},
				{Label: "august", Amount: 500},
			},
			Reliability: client.ReliabilityMetrics{
				UptimePct:            99.9,
				MTTRMinutes:          10,
				Incidents30d:         1,
				ChangeFailureRatePct: 5,
			},
			Governance: client.GovernancePosture{
				HasRunbook:          true,
				HasMonitoring:       true,
				HasOwner:            true,
				HasDocumentation:    true,
				HasIncidentResponse: true,
			},
		}
	}
	return client.RegisterServiceInput{
		Name: name,
		Team: "legacy",
		SLOs: []client.SLO{
			{Name: "availability", TargetPct: 99.9, CurrentPct: 98.0},
		},
		Reliability: client.ReliabilityMetrics{
			UptimePct:            95.0,
			MTTRMinutes:          120,
			Incidents30d:         10,
			ChangeFailureRatePct: 50,
		},
	}
}

func TestIntegration(t *testing.T) {
	reg := prometheus.NewRegistry()
	config := config.Configuration{
		Database: database.Configuration{
			Migrations: "../../dev/migrations",
			Username:   "fleetscore",
			Password:   "fleetscore",
			Database:   "fleetscore",
			Host:       "127.0.0.1",
			Port:       5432,
			SSLMode:    "disable",
		},
		HTTP: apihttp.Configuration{
			Host: "127.0.0.1",
			Port: 10000,
		},
	}
	logger := slog.Default()
	store, err := database.New(logger, config.Database)
	assert.NoError(t, err)
	for _, query := range database.CleanupQueries {
		_, err := store.Exec(query)
		assert.NoError(t, err)
	}
	platformService, err := platform.New(logger, store, reg)
	assert.NoError(t, err)
	builder := handlers.NewBuilder(platformService)
	server, err := apihttp.NewServer(logger, config.HTTP, reg, builder)
	assert.NoError(t, err)
	server.Start()
	defer func() {
		err := server.Stop()
		assert.NoError(t, err)
	}()
	time.Sleep(300 * time.Millisecond)

	// empty fleet
	var emptyReport aggregates.Report
	testHTTP(t, testCase{url: "/api/v1/report", method: http.MethodGet, expectedStatus: 200}, &emptyReport)
	assert.Equal(t, 0, emptyReport.TotalServices)

	// register two services and fetch them back
	testHTTP(t, testCase{url: "/api/v1/service", method: http.MethodPut, expectedStatus: 200, payload: registerPayload("api", true)}, nil)
	testHTTP(t, testCase{url: "/api/v1/service", method: http.MethodPut, expectedStatus: 200, payload: registerPayload("billing", false)}, nil)

	var service client.Service
	testHTTP(t, testCase{url: "/api/v1/service/api", method: http.MethodGet, expectedStatus: 200}, &service)
	assert.Equal(t, "api", service.Name)
	assert.Equal(t, "platform", service.Team)
	assert.Len(t, service.SLOs, 1)
	assert.Len(t, service.Governance, 5)

	var list client.ListServicesOutput
	testHTTP(t, testCase{url: "/api/v1/service", method: http.MethodGet, expectedStatus: 200}, &list)
	assert.Len(t, list.Result, 2)

	// the report partitions the fleet and sums the latest costs
	var report aggregates.Report
	testHTTP(t, testCase{url: "/api/v1/report", method: http.MethodGet, expectedStatus: 200}, &report)
	assert.Equal(t, 2, report.TotalServices)
	assert.Equal(t, 1, report.HealthyCount)
	assert.Equal(t, 0, report.DegradedCount)
	assert.Equal(t, 1, report.CriticalCount)
	assert.Equal(t, 500.0, report.TotalMonthlyCost)

	// registering again under the same name replaces the service
	testHTTP(t, testCase{url: "/api/v1/service", method: http.MethodPut, expectedStatus: 200, payload: registerPayload("billing", true)}, nil)
	testHTTP(t, testCase{url: "/api/v1/report", method: http.MethodGet, expectedStatus: 200}, &report)
	assert.Equal(t, 2, report.TotalServices)
	assert.Equal(t, 2, report.HealthyCount)
	assert.Equal(t, 0, report.CriticalCount)

	// validation and not found errors
	testHTTP(t, testCase{url: "/api/v1/service", method: http.MethodPut, expectedStatus: 400, payload: client.RegisterServiceInput{Team: "nobody"}}, nil)
	testHTTP(t, testCase{url: "/api/v1/service/unknown", method: http.MethodGet, expectedStatus: 404, body: "not found"}, nil)

	testHTTP(t, testCase{url: "/api/v1/service/api", method: http.MethodDelete, expectedStatus: 200}, nil)
	testHTTP(t, testCase{url: "/api/v1/service/api", method: http.MethodDelete, expectedStatus: 404}, nil)

	testHTTP(t, testCase{url: "/api/v1/report", method: http.MethodGet, expectedStatus: 200}, &report)
	assert.Equal(t, 1, report.TotalServices)

	// metrics endpoint exposes the fleet gauges
	testHTTP(t, testCase{url: "/metrics", method: http.MethodGet, expectedStatus: 200, body: "fleet_healthy_services"}, nil)
	testHTTP(t, testCase{url: "/healthz", method: http.MethodGet, expectedStatus: 200}, nil)
}
