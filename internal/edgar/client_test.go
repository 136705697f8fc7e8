package edgar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"0": {"cik_str": 1065280, "ticker": "NFLX", "title": "NETFLIX INC"},
			"1": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."}
		}`))
	})
	mux.HandleFunc("/submissions/CIK0001065280.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"cik": "1065280",
			"filings": {"recent": {
				"accessionNumber": ["0001065280-24-000030", "0001065280-24-000010", "0001065280-23-000035"],
				"form": ["10-K", "8-K", "10-K"],
				"filingDate": ["2024-01-26", "2024-01-10", "2023-01-27"],
				"primaryDocument": ["nflx-20231231.htm", "nflx-8k.htm", "nflx-20221231.htm"]
			}}
		}`))
	})
	mux.HandleFunc("/Archives/edgar/data/1065280/000106528024000030/nflx-20231231.htm", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>Annual Report</html>"))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient("finsight test@example.com", WithBaseURLs(server.URL, server.URL))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	return server, client
}

func TestNewClient_RequiresUserAgent(t *testing.T) {
	if _, err := NewClient("  "); err == nil {
		t.Error("expected error for missing user agent")
	}
}

func TestClient_ResolveCIK(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	cik, err := client.ResolveCIK(ctx, "nflx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cik != "0001065280" {
		t.Errorf("expected zero-padded CIK 0001065280, got %s", cik)
	}

	_, err = client.ResolveCIK(ctx, "ZZZZ")
	if !errors.Is(err, ErrTickerNotFound) {
		t.Errorf("expected ErrTickerNotFound, got %v", err)
	}
}

func TestClient_RecentFilings(t *testing.T) {
	_, client := newTestServer(t)

	filings, err := client.RecentFilings(context.Background(), "0001065280", "10-K", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(filings) != 2 {
		t.Fatalf("expected 2 10-K filings, got %d", len(filings))
	}
	if filings[0].AccessionNumber != "0001065280-24-000030" {
		t.Errorf("expected newest filing first, got %s", filings[0].AccessionNumber)
	}
	if filings[0].PrimaryDocument != "nflx-20231231.htm" {
		t.Errorf("unexpected primary document: %s", filings[0].PrimaryDocument)
	}
}

func TestClient_RecentFilings_Limit(t *testing.T) {
	_, client := newTestServer(t)

	filings, err := client.RecentFilings(context.Background(), "0001065280", "10-K", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filings) != 1 {
		t.Errorf("expected limit to cap filings at 1, got %d", len(filings))
	}
}

func TestClient_DownloadFiling(t *testing.T) {
	_, client := newTestServer(t)

	doc, err := client.DownloadFiling(context.Background(), Filing{
		CIK:             "0001065280",
		AccessionNumber: "0001065280-24-000030",
		PrimaryDocument: "nflx-20231231.htm",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(doc) != "<html>Annual Report</html>" {
		t.Errorf("unexpected document body: %q", doc)
	}
}

func TestClient_DownloadFiling_Validation(t *testing.T) {
	_, client := newTestServer(t)

	if _, err := client.DownloadFiling(context.Background(), Filing{}); err == nil {
		t.Error("expected error for incomplete filing")
	}
}

func TestClient_RequestFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient("finsight test@example.com", WithBaseURLs(server.URL, server.URL))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = client.ResolveCIK(context.Background(), "NFLX")
	if !errors.Is(err, ErrRequestFailed) {
		t.Errorf("expected ErrRequestFailed, got %v", err)
	}
}
