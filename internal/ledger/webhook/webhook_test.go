package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finbot/internal/core"
)

func TestFetchBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"MONTO":"50","CATEGORÍA ":"Comida","TIPO DE TRANSACCIÓN":"gastos","FECHA ":"2024-01-15","row_number":2}]`)
	}))
	defer srv.Close()

	c := New(srv.URL, srv.URL, 5*time.Second)
	recs, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Category != "Comida" || recs[0].Type != "gastos" || recs[0].Date != "2024-01-15" {
		t.Errorf("unexpected record: %+v", recs[0])
	}
	if recs[0].RowNumber != 2 {
		t.Errorf("row number = %d, want 2", recs[0].RowNumber)
	}
}

func TestFetchWrappedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":[{"MONTO":100,"TIPO DE TRANSACCIÓN":"income","FECHA ":"2024-01-16"}]}`)
	}))
	defer srv.Close()

	c := New(srv.URL, srv.URL, 5*time.Second)
	recs, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 1 || recs[0].Type != "income" {
		t.Errorf("unexpected records: %+v", recs)
	}
}

func TestFetchUnrecognizedShapeMeansNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"message":"workflow executed"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, srv.URL, 5*time.Second)
	recs, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no records, got %+v", recs)
	}
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, srv.URL, 5*time.Second)
	_, err := c.Fetch(context.Background())
	if !errors.Is(err, core.ErrRemoteUnavailable) {
		t.Errorf("expected ErrRemoteUnavailable, got %v", err)
	}
}

func TestAppendPostsSpanishKeyedRecord(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("invalid body: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, srv.URL, 5*time.Second)
	err := c.Append(context.Background(), core.RawRecord{
		Amount:   25.0,
		Category: "Comida",
		Type:     "expense",
		Date:     "2024-01-15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, key := range []string{"MONTO", "CATEGORÍA ", "TIPO DE TRANSACCIÓN", "FECHA "} {
		if _, ok := got[key]; !ok {
			t.Errorf("payload missing sheet column %q: %v", key, got)
		}
	}
	if got["MONTO"] != 25.0 {
		t.Errorf("MONTO = %v, want 25", got["MONTO"])
	}
}

func TestAppendFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, srv.URL, 5*time.Second)
	err := c.Append(context.Background(), core.RawRecord{Amount: 1})
	if !errors.Is(err, core.ErrRemoteUnavailable) {
		t.Errorf("expected ErrRemoteUnavailable, got %v", err)
	}
}
