// Package test holds helpers shared by the HTTP and integration tests.
package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// TestTimer is a utility for measuring test execution time
type TestTimer struct {
	start time.Time
	name  string
}

func NewTestTimer(name string) *TestTimer {
	return &TestTimer{
		start: time.Now(),
		name:  name,
	}
}

// Stop prints and returns the elapsed time.
func (t *TestTimer) Stop() time.Duration {
	duration := time.Since(t.start)
	fmt.Printf("⏱️  %s took %v\n", t.name, duration)
	return duration
}

// PerformanceAssertion fails t when duration exceeds maxDuration.
func PerformanceAssertion(t *testing.T, testName string, duration time.Duration, maxDuration time.Duration) {
	t.Helper()
	if duration > maxDuration {
		t.Errorf("❌ %s took %v, expected less than %v", testName, duration, maxDuration)
	} else {
		t.Logf("✅ %s took %v (under %v limit)", testName, duration, maxDuration)
	}
}

// Response is a decoded fiber test response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode unmarshals the body into out and fails the test on error.
func (r Response) Decode(t *testing.T, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, out), "body: %s", r.Body)
}

// DoJSON sends body (marshalled unless it is already a string or []byte)
// through app.Test. headers are given as key, value pairs.
func DoJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, headers ...string) Response {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return Response{Status: resp.StatusCode, Header: resp.Header, Body: raw}
}

// TestSuiteResult collects timings for a group of subtests.
type TestSuiteResult struct {
	SuiteName string
	Total     int
	TotalTime time.Duration
}

func NewTestSuiteResult(suiteName string) *TestSuiteResult {
	return &TestSuiteResult{SuiteName: suiteName}
}

func (s *TestSuiteResult) Add(d time.Duration) {
	s.Total++
	s.TotalTime += d
}

// PrintSummary prints a summary of the test suite results
func (s *TestSuiteResult) PrintSummary() {
	if s.Total == 0 {
		return
	}
	fmt.Printf("\n📊 Test Suite Summary: %s\n", s.SuiteName)
	fmt.Printf("   Total Tests: %d\n", s.Total)
	fmt.Printf("   Total Time: %v\n", s.TotalTime)
	fmt.Printf("   Average Time: %v\n\n", s.TotalTime/time.Duration(s.Total))
}
