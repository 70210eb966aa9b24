package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fintrack/internal/ledger"
	"fintrack/internal/storage/memory"
)

func newTestServer() *httptest.Server {
	svc := ledger.NewService(memory.New(), nil)
	return httptest.NewServer(NewServer(":0", svc).Handler)
}

func postTxn(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/transactions", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	return resp
}

func TestAddAndSummary(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	for _, body := range []string{
		`{"date":"2024-01-05","type":"expense","category":"Food","amount":"12.50"}`,
		`{"date":"2024-01-20","type":"income","category":"Salary","amount":"2000.00"}`,
		`{"date":"2024-02-01","type":"expense","category":"Food","amount":"8.00"}`,
	} {
		resp := postTxn(t, ts, body)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}
		resp.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/api/summary")
	if err != nil {
		t.Fatalf("get summary: %v", err)
	}
	defer resp.Body.Close()

	var sum map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&sum); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sum["total_income"] != "2000.00" || sum["total_expense"] != "20.50" || sum["net"] != "1979.50" {
		t.Fatalf("unexpected summary: %v", sum)
	}
}

func TestAddValidation(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	cases := []string{
		`{"type":"transfer","category":"Food","amount":"1.00"}`,
		`{"type":"expense","category":"Food","amount":"-1.00"}`,
		`{"type":"expense","category":"","amount":"1.00"}`,
		`not json`,
	}
	for _, body := range cases {
		resp := postTxn(t, ts, body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestListFilterValidation(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/transactions?month=3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("month without year: expected 400, got %d", resp.StatusCode)
	}
}

func TestMonthlyReportEndpoint(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp := postTxn(t, ts, `{"date":"2024-01-05","type":"expense","category":"Food","amount":"12.50"}`)
	resp.Body.Close()

	res, err := http.Get(ts.URL + "/api/report/2024")
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	defer res.Body.Close()

	var months []struct {
		Month   string `json:"month"`
		Expense string `json:"expense"`
	}
	if err := json.NewDecoder(res.Body).Decode(&months); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(months) != 12 {
		t.Fatalf("expected 12 months, got %d", len(months))
	}
	if months[0].Month != "January" || months[0].Expense != "12.50" {
		t.Fatalf("unexpected January entry: %+v", months[0])
	}
}
