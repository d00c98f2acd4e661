package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-datacharts-be/internal/bootstrap"
	"ai-datacharts-be/internal/config"
	"ai-datacharts-be/internal/dto"
	"ai-datacharts-be/internal/pkg/serverutils"
	"ai-datacharts-be/internal/server"
	"ai-datacharts-be/pkg/agent"
	"ai-datacharts-be/pkg/charts"
)

// scriptedSuggester plays a fixed generator result so the API flow can be
// exercised without a live LLM.
type scriptedSuggester struct {
	result *agent.SuggestResult
	err    error
}

func (s *scriptedSuggester) SuggestCharts(ctx context.Context, req *agent.SuggestRequest) (*agent.SuggestResult, error) {
	return s.result, s.err
}

func newTestApp(t *testing.T, suggester agent.Suggester) *fiber.App {
	t.Helper()
	t.Setenv("LOG_FILE_PATH", t.TempDir()+"/test.log")
	cfg := config.Load()
	container := bootstrap.NewContainerWithSuggester(cfg, suggester)
	return server.New(cfg, container).GetApp()
}

func uploadCSV(t *testing.T, app *fiber.App, csv string) dto.UploadDatasetResponse {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "sales.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/dataset/v1/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var result serverutils.BaseResponse[dto.UploadDatasetResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.True(t, result.Success)
	require.NotEmpty(t, result.Data.SessionId)
	return result.Data
}

const salesCSV = "region,amount,date\nNorth,10,2024-01-01\nSouth,20,2024-01-02\nNorth,30,2024-01-02\nEast,5,2024-01-03\n"

func TestChartsAPIFlow(t *testing.T) {
	suggester := &scriptedSuggester{
		result: &agent.SuggestResult{
			Reply: "Try these two charts.",
			Suggestions: []charts.ChartSpec{
				{Title: "Amount by region", ChartType: "bar", Option: map[string]interface{}{"series": []interface{}{}}},
				{Title: "Amount over time", ChartType: "line", Option: map[string]interface{}{"series": []interface{}{}}},
			},
		},
	}
	app := newTestApp(t, suggester)

	upload := uploadCSV(t, app, salesCSV)
	assert.Len(t, upload.Columns, 3)
	assert.Equal(t, "region", upload.Columns[0].Name)
	assert.Equal(t, "categorical", upload.Columns[0].Dtype)
	assert.Len(t, upload.Preview, 4)

	t.Run("Health check", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/health/v1", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("Chart command builds from the dataset", func(t *testing.T) {
		body, _ := json.Marshal(dto.ChatRequest{
			SessionId: upload.SessionId,
			Message:   "show me a bar chart",
		})
		req := httptest.NewRequest("POST", "/api/chat/v1", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.BaseResponse[dto.ChatResponse]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.True(t, result.Success)
		assert.Contains(t, result.Data.Reply, "Chart 1 updated with")
		require.Len(t, result.Data.Charts, 1)
		assert.Equal(t, "bar", result.Data.Charts[0].ChartType)
		assert.Len(t, result.Data.History, 2)
	})

	t.Run("Free-form chat goes to the generator", func(t *testing.T) {
		body, _ := json.Marshal(dto.ChatRequest{
			SessionId: upload.SessionId,
			Message:   "what stands out in this data?",
		})
		req := httptest.NewRequest("POST", "/api/chat/v1", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.BaseResponse[dto.ChatResponse]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, "Try these two charts.", result.Data.Reply)
		// manual bar slot from the previous turn plus both suggestions
		assert.Len(t, result.Data.Charts, 3)
		assert.Len(t, result.Data.History, 4)
	})

	t.Run("Manual grouped chart", func(t *testing.T) {
		body, _ := json.Marshal(dto.ManualChartRequest{
			SessionId: upload.SessionId,
			ChartType: "bar",
			GroupBy:   "region",
			Value:     "amount",
			Agg:       "mean",
		})
		req := httptest.NewRequest("POST", "/api/chart/v1/manual", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.BaseResponse[dto.ManualChartResponse]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, "Bar chart updated with Mean of amount by region.", result.Data.Message)
		assert.Equal(t, "Mean of amount by region", result.Data.Chart.Title)
		// the grouped bar replaced the heuristic bar in slot 1
		assert.Len(t, result.Data.Charts, 3)
	})
}

func TestChartsAPIErrors(t *testing.T) {
	app := newTestApp(t, &scriptedSuggester{result: &agent.SuggestResult{Reply: "ok"}})

	t.Run("Unknown session is 404", func(t *testing.T) {
		body, _ := json.Marshal(dto.ChatRequest{SessionId: "nope", Message: "hi"})
		req := httptest.NewRequest("POST", "/api/chat/v1", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		var result serverutils.BaseResponse[any]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.False(t, result.Success)
		assert.Equal(t, "Session not found.", result.Message)
	})

	t.Run("Missing message fails validation", func(t *testing.T) {
		body, _ := json.Marshal(dto.ChatRequest{SessionId: "nope"})
		req := httptest.NewRequest("POST", "/api/chat/v1", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Unsupported upload type is 400", func(t *testing.T) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("file", "data.txt")
		require.NoError(t, err)
		_, err = part.Write([]byte("hello"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest("POST", "/api/dataset/v1/upload", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		var result serverutils.BaseResponse[any]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, "Only CSV and Excel files are supported.", result.Message)
	})

	t.Run("Pie on numeric-only data is 400", func(t *testing.T) {
		upload := uploadCSV(t, app, "amount\n1\n2\n3\n")

		body, _ := json.Marshal(dto.ManualChartRequest{
			SessionId: upload.SessionId,
			ChartType: "pie",
		})
		req := httptest.NewRequest("POST", "/api/chart/v1/manual", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		var result serverutils.BaseResponse[any]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, "A pie chart requires a categorical column.", result.Message)
	})

	t.Run("Generator failure is 502", func(t *testing.T) {
		failing := newTestApp(t, &scriptedSuggester{err: assert.AnError})
		upload := uploadCSV(t, failing, salesCSV)

		body, _ := json.Marshal(dto.ChatRequest{
			SessionId: upload.SessionId,
			Message:   "tell me something",
		})
		req := httptest.NewRequest("POST", "/api/chat/v1", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := failing.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 502, resp.StatusCode)

		var result serverutils.BaseResponse[any]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, "Chart agent request failed.", result.Message)
	})
}
