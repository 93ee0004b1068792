package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	scherrors "github.com/dabstractor/midnightexpress/internal/scheduling/errors"
	"github.com/dabstractor/midnightexpress/pkg/logger"
)

func testStore(t *testing.T, handler http.HandlerFunc) (*HTTPStore, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := logger.New(logger.Config{Level: logger.ERROR, Service: "store-test"})
	return NewHTTPStore(srv.URL, 5*time.Second, log), srv
}

func TestListDecodesPlaceholderTimestamps(t *testing.T) {
	s, _ := testStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"date": "2026-09-10", "time": "1899-12-30T15:00:00Z"},
			{"date": "2026-09-10", "time": "1899-12-30T07:30:00Z"},
			{"date": "2026-09-11", "time": "08:15"}
		]`))
	})

	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Date != "2026-09-10" || got[0].PickupMin != 900 {
		t.Errorf("row 0 = %+v, want date 2026-09-10 pickup 900", got[0])
	}
	if got[1].PickupMin != 450 {
		t.Errorf("row 1 pickup = %d, want 450", got[1].PickupMin)
	}
	if got[2].PickupMin != 495 {
		t.Errorf("row 2 pickup = %d, want 495", got[2].PickupMin)
	}
}

func TestListSkipsBadRows(t *testing.T) {
	s, _ := testStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"date": "2026-09-10", "time": "not-a-time"},
			{"date": "2026-09-10", "time": "1899-12-30T15:00:00Z"}
		]`))
	})

	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 (bad row skipped)", len(got))
	}
	if got[0].PickupMin != 900 {
		t.Errorf("pickup = %d, want 900", got[0].PickupMin)
	}
}

func TestListServerError(t *testing.T) {
	s, _ := testStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := s.List(context.Background())
	if !errors.Is(err, scherrors.ErrStoreUnavailable) {
		t.Errorf("error = %v, want ErrStoreUnavailable", err)
	}
}

func TestAppendSubmitsForm(t *testing.T) {
	var gotForm map[string]string
	s, _ := testStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %s", ct)
		}
		r.ParseForm()
		gotForm = map[string]string{
			"booking_id":  r.PostFormValue("booking_id"),
			"name":        r.PostFormValue("name"),
			"pickup_date": r.PostFormValue("pickup_date"),
			"pickup_time": r.PostFormValue("pickup_time"),
			"destination": r.PostFormValue("destination"),
			"passengers":  r.PostFormValue("passengers"),
			"wheelchair":  r.PostFormValue("wheelchair"),
		}
		w.WriteHeader(http.StatusCreated)
	})

	err := s.Append(context.Background(), Record{
		BookingID:     "9f1c9f6e-4c19-4b77-8d4f-2a40cbe9f001",
		Name:          "Jordan Lee",
		Phone:         "+17045550123",
		PickupAddress: "1200 South Blvd, Charlotte, NC",
		Destination:   "CLT",
		PickupDate:    "2026-09-10",
		PickupTime:    "15:00",
		Passengers:    3,
		Wheelchair:    true,
	})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	want := map[string]string{
		"booking_id":  "9f1c9f6e-4c19-4b77-8d4f-2a40cbe9f001",
		"name":        "Jordan Lee",
		"pickup_date": "2026-09-10",
		"pickup_time": "15:00",
		"destination": "CLT",
		"passengers":  "3",
		"wheelchair":  "true",
	}
	for k, v := range want {
		if gotForm[k] != v {
			t.Errorf("form[%s] = %q, want %q", k, gotForm[k], v)
		}
	}
}

func TestAppendRejected(t *testing.T) {
	s, _ := testStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := s.Append(context.Background(), Record{Name: "x"})
	if !errors.Is(err, scherrors.ErrStoreWriteFailed) {
		t.Errorf("error = %v, want ErrStoreWriteFailed", err)
	}
}

func TestPing(t *testing.T) {
	healthy, _ := testStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	if err := healthy.Ping(context.Background()); err != nil {
		t.Errorf("Ping() on healthy store = %v", err)
	}

	down, _ := testStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	if err := down.Ping(context.Background()); !errors.Is(err, scherrors.ErrStoreUnavailable) {
		t.Errorf("Ping() on down store = %v, want ErrStoreUnavailable", err)
	}
}
