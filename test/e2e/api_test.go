package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// Base URL for the API server - set via environment variable or use default
	baseURL = "http://localhost:8080"
)

// TestHealthEndpoint verifies the health check endpoint returns 200 OK
func TestHealthEndpoint(t *testing.T) {
	resp, err := http.Get(baseURL + "/health")
	require.NoError(t, err, "Failed to call health endpoint")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "Health check should return 200 OK")

	var health map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&health)
	require.NoError(t, err, "Failed to decode health response")

	assert.Equal(t, "healthy", health["status"], "Status should be healthy")
}

// TestReadinessEndpoint verifies the readiness check endpoint
func TestReadinessEndpoint(t *testing.T) {
	resp, err := http.Get(baseURL + "/ready")
	require.NoError(t, err, "Failed to call readiness endpoint")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "Readiness check should return 200 OK")
}

// TestMetricsEndpoint verifies Prometheus metrics are exposed on the API server
func TestMetricsEndpoint(t *testing.T) {
	resp, err := http.Get(baseURL + "/metrics")
	require.NoError(t, err, "Failed to call metrics endpoint")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "Metrics endpoint should return 200 OK")
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain", "Metrics should be in Prometheus format")
}

// TestQAEndpoint verifies the retrieval-core QA endpoint runs a query through
// the C1-C10 pipeline and returns a ranked-result envelope.
func TestQAEndpoint(t *testing.T) {
	body, err := json.Marshal(map[string]interface{}{
		"query":  "bail application under section 497 CrPC",
		"top_k":  5,
	})
	require.NoError(t, err)

	resp, err := http.Post(baseURL+"/api/v1/qa", "application/json", bytes.NewReader(body))
	require.NoError(t, err, "Failed to call QA endpoint")
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		t.Skip("retrieval engine not configured on this deployment")
	}
	assert.Equal(t, http.StatusOK, resp.StatusCode, "QA query should return 200 OK")

	var result map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err, "Failed to decode QA response")

	_, hasResults := result["results"]
	assert.True(t, hasResults, "Response should contain a results array")
	assert.Contains(t, result, "total_hits", "Response should report total_hits")
	assert.Contains(t, result, "search_time_ms", "Response should report search_time_ms")
}

// TestQAEndpointRejectsEmptyQuery verifies the handler validates its input
// before reaching the orchestrator.
func TestQAEndpointRejectsEmptyQuery(t *testing.T) {
	body, err := json.Marshal(map[string]interface{}{"query": ""})
	require.NoError(t, err)

	resp, err := http.Post(baseURL+"/api/v1/qa", "application/json", bytes.NewReader(body))
	require.NoError(t, err, "Failed to call QA endpoint")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "Empty query should return 400")
}

// TestSearchCasesEndpoint verifies the legacy case search functionality
func TestSearchCasesEndpoint(t *testing.T) {
	t.Skip("Requires populated database or test fixtures")

	body, err := json.Marshal(map[string]interface{}{"query": "contract", "limit": 10})
	require.NoError(t, err)

	resp, err := http.Post(baseURL+"/api/v1/cases/search", "application/json", bytes.NewReader(body))
	require.NoError(t, err, "Failed to call search endpoint")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "Search should return 200 OK")

	var result map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err, "Failed to decode search response")

	cases, ok := result["cases"].([]interface{})
	require.True(t, ok, "Response should contain cases array")
	assert.LessOrEqual(t, len(cases), 10, "Should respect limit parameter")
}

// TestGetCaseByID verifies retrieving a specific case by ID
func TestGetCaseByID(t *testing.T) {
	t.Skip("Requires valid case ID in database")

	caseID := "test-case-id-123"
	resp, err := http.Get(baseURL + "/api/v1/cases/" + caseID)
	require.NoError(t, err, "Failed to call get case endpoint")
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		t.Skip("Case not found - test data needs to be set up")
	}

	assert.Equal(t, http.StatusOK, resp.StatusCode, "Should return 200 OK for valid case")

	var caseData map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&caseData)
	require.NoError(t, err, "Failed to decode case response")

	assert.Equal(t, caseID, caseData["id"], "Case ID should match requested ID")
}

// TestCORSHeaders verifies CORS headers are set correctly
func TestCORSHeaders(t *testing.T) {
	req, err := http.NewRequest("OPTIONS", baseURL+"/api/v1/qa", nil)
	require.NoError(t, err)

	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	client := &http.Client{}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode, "OPTIONS request should return 204")
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"), "CORS headers should be present")
}

// TestRateLimiting verifies rate limiting is enforced
func TestRateLimiting(t *testing.T) {
	t.Skip("Rate limiting configuration may vary by environment")

	// Send many rapid requests to trigger rate limit
	const requestCount = 100
	statusCodes := make(map[int]int)

	for i := 0; i < requestCount; i++ {
		resp, err := http.Get(baseURL + "/api/v1/stats")
		if err != nil {
			continue
		}
		statusCodes[resp.StatusCode]++
		resp.Body.Close()
	}

	// Should see some 429 (Too Many Requests) responses
	assert.Greater(t, statusCodes[http.StatusTooManyRequests], 0,
		"Rate limiting should trigger 429 responses")
}
