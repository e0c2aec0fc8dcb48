package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/arkas/internal/common"
)

// fakeSheetsAPI answers the handful of Sheets v4 endpoints the writer uses.
type fakeSheetsAPI struct {
	failUpdates int
	updateCode  int // when set, every update fails with this status
	calls       []string
	updates     []sheets.ValueRange
	batches     []sheets.BatchUpdateSpreadsheetRequest
	existing    []*sheets.Sheet
	mu          sync.Mutex
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/v4/spreadsheets")
	f.calls = append(f.calls, r.Method+" "+path)
	w.Header().Set("Content-Type", "application/json")

	body, _ := io.ReadAll(r.Body)

	switch {
	case r.Method == http.MethodPost && path == "":
		var req sheets.Spreadsheet
		_ = json.Unmarshal(body, &req)
		req.SpreadsheetId = "new-id"
		req.Sheets[0].Properties.SheetId = 7
		_ = json.NewEncoder(w).Encode(req)
	case r.Method == http.MethodGet:
		_ = json.NewEncoder(w).Encode(sheets.Spreadsheet{SpreadsheetId: "existing", Sheets: f.existing})
	case strings.HasSuffix(path, ":clear"):
		_, _ = w.Write([]byte(`{}`))
	case strings.HasSuffix(path, ":batchUpdate"):
		var req sheets.BatchUpdateSpreadsheetRequest
		_ = json.Unmarshal(body, &req)
		f.batches = append(f.batches, req)
		resp := sheets.BatchUpdateSpreadsheetResponse{}
		if req.Requests[0].AddSheet != nil {
			resp.Replies = []*sheets.Response{{
				AddSheet: &sheets.AddSheetResponse{Properties: &sheets.SheetProperties{SheetId: 42, Title: req.Requests[0].AddSheet.Properties.Title}},
			}}
		}
		_ = json.NewEncoder(w).Encode(resp)
	case r.Method == http.MethodPut:
		if f.updateCode != 0 {
			w.WriteHeader(f.updateCode)
			_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":"denied"}}`, f.updateCode)
			return
		}
		if f.failUpdates > 0 {
			f.failUpdates--
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"code":500,"message":"backend error"}}`))
			return
		}
		var vr sheets.ValueRange
		_ = json.Unmarshal(body, &vr)
		f.updates = append(f.updates, vr)
		_, _ = w.Write([]byte(`{}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestWriter(t *testing.T, api *fakeSheetsAPI, mutate func(c *Config)) *Writer {
	t.Helper()

	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.RetryDelay = time.Millisecond
	if mutate != nil {
		mutate(&cfg)
	}

	w, err := NewWriterWithOptions(context.Background(), cfg,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		option.WithEndpoint(server.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	return w
}

var testHeader = []string{"Name", "Date", "Email", "Category", "No", "Activity", "Parameter"}

func testRows() [][]string {
	return [][]string{
		{"Sari", "2025-01-15", "sari@example.com", "Stop", "1", "Begadang", "setiap malam"},
		{"Sari", "2025-01-15", "sari@example.com", "Stop", "2", "", ""},
	}
}

func TestWriter_CreatesSpreadsheet(t *testing.T) {
	api := &fakeSheetsAPI{}
	w := newTestWriter(t, api, nil)

	require.NoError(t, w.Write(context.Background(), testHeader, testRows()))

	require.Len(t, api.updates, 1)
	values := api.updates[0].Values
	require.Len(t, values, 3)
	assert.Equal(t, "Name", values[0][0])
	assert.Equal(t, "Begadang", values[1][5])

	require.Len(t, api.batches, 1)
	format := api.batches[0].Requests
	require.Len(t, format, 3)
	assert.Equal(t, int64(7), format[0].RepeatCell.Range.SheetId)
	assert.Equal(t, int64(len(testHeader)), format[0].RepeatCell.Range.EndColumnIndex)
	assert.Equal(t, int64(1), format[2].UpdateSheetProperties.Properties.GridProperties.FrozenRowCount)

	assert.Equal(t, "POST ", api.calls[0])
}

func TestWriter_ExistingSpreadsheetAddsSheet(t *testing.T) {
	api := &fakeSheetsAPI{
		existing: []*sheets.Sheet{{Properties: &sheets.SheetProperties{SheetId: 0, Title: "Sheet1"}}},
	}
	w := newTestWriter(t, api, func(c *Config) {
		c.SpreadsheetID = "existing"
		c.EnableFormatting = false
	})

	require.NoError(t, w.Write(context.Background(), testHeader, testRows()))

	require.Len(t, api.batches, 1)
	require.NotNil(t, api.batches[0].Requests[0].AddSheet)
	assert.Equal(t, "Worksheets", api.batches[0].Requests[0].AddSheet.Properties.Title)
	require.Len(t, api.updates, 1)
}

func TestWriter_ExistingSheetReused(t *testing.T) {
	api := &fakeSheetsAPI{
		existing: []*sheets.Sheet{{Properties: &sheets.SheetProperties{SheetId: 5, Title: "Worksheets"}}},
	}
	w := newTestWriter(t, api, func(c *Config) { c.SpreadsheetID = "existing" })

	require.NoError(t, w.Write(context.Background(), testHeader, testRows()))

	require.Len(t, api.batches, 1)
	assert.Nil(t, api.batches[0].Requests[0].AddSheet)
	assert.Equal(t, int64(5), api.batches[0].Requests[0].RepeatCell.Range.SheetId)
}

func TestWriter_Batches(t *testing.T) {
	api := &fakeSheetsAPI{}
	w := newTestWriter(t, api, func(c *Config) { c.BatchSize = 2 })

	rows := append(testRows(), testRows()...)
	require.NoError(t, w.Write(context.Background(), testHeader, rows))

	require.Len(t, api.updates, 3)
	assert.Len(t, api.updates[0].Values, 2)
	assert.Len(t, api.updates[2].Values, 1)
}

func TestWriter_RetriesFailedWrite(t *testing.T) {
	api := &fakeSheetsAPI{failUpdates: 1}
	w := newTestWriter(t, api, nil)

	require.NoError(t, w.Write(context.Background(), testHeader, testRows()))
	assert.Len(t, api.updates, 1)
}

func TestWriter_GivesUp(t *testing.T) {
	api := &fakeSheetsAPI{failUpdates: 10}
	w := newTestWriter(t, api, func(c *Config) { c.RetryAttempts = 2 })

	err := w.Write(context.Background(), testHeader, testRows())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write data")
}

func TestMockWriter(t *testing.T) {
	m := NewMockWriter()
	require.NoError(t, m.Write(context.Background(), testHeader, testRows()))

	boom := errors.New("boom")
	m.SetWriteError(boom)
	assert.ErrorIs(t, m.Write(context.Background(), testHeader, nil), boom)

	calls := m.GetWriteCalls()
	require.Len(t, calls, 2)
	assert.Len(t, calls[0].Rows, 2)
	assert.Equal(t, boom, calls[1].Error)
	assert.Equal(t, 2, m.WriteCallCount)
}

func TestCallbackHandler(t *testing.T) {
	codes := make(chan string, 1)
	errs := make(chan error, 1)
	h := callbackHandler("expected", codes, errs)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/callback?state=wrong&code=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, errs, 1)

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/callback?state=expected&code=abc", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", <-codes)
}

func countCalls(api *fakeSheetsAPI, method string) int {
	api.mu.Lock()
	defer api.mu.Unlock()
	n := 0
	for _, c := range api.calls {
		if strings.HasPrefix(c, method+" ") {
			n++
		}
	}
	return n
}

func TestWriter_ClientErrorsAreNotRetried(t *testing.T) {
	for _, code := range []int{http.StatusForbidden, http.StatusNotFound} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			api := &fakeSheetsAPI{updateCode: code}
			w := newTestWriter(t, api, func(c *Config) { c.RetryAttempts = 3 })

			err := w.Write(context.Background(), testHeader, testRows())
			require.Error(t, err)
			assert.False(t, common.IsRetryable(err))
			assert.NotErrorIs(t, err, common.ErrMaxRetries)
			assert.Equal(t, 1, countCalls(api, http.MethodPut))
		})
	}
}

func TestWriter_ServerErrorsAreRetried(t *testing.T) {
	api := &fakeSheetsAPI{updateCode: http.StatusServiceUnavailable}
	w := newTestWriter(t, api, func(c *Config) { c.RetryAttempts = 3 })

	err := w.Write(context.Background(), testHeader, testRows())
	assert.ErrorIs(t, err, common.ErrMaxRetries)
	assert.Equal(t, 3, countCalls(api, http.MethodPut))
}

func TestClassify(t *testing.T) {
	quota := classify(&googleapi.Error{Code: http.StatusTooManyRequests})
	assert.ErrorIs(t, quota, common.ErrRateLimit)
	assert.True(t, common.IsRetryable(quota))

	denied := classify(fmt.Errorf("wrapped: %w", &googleapi.Error{Code: http.StatusForbidden}))
	var retryable *common.RetryableError
	require.ErrorAs(t, denied, &retryable)
	assert.False(t, retryable.Retryable)

	plain := errors.New("dial tcp: timeout")
	assert.Equal(t, plain, classify(plain))
	assert.NoError(t, classify(nil))
}
