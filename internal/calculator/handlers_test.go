package calculator

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"

	"keypad-calculator/internal/testutil"
)

func TestMain(m *testing.M) {
	if err := InitMetrics(); err != nil {
		fmt.Fprintf(os.Stderr, "initializing calculator metrics: %v\n", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func newTestRouter() (http.Handler, *Sessions) {
	sessions := NewSessions()
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(sessions))
	return r, sessions
}

func postJSON(path, body string) *http.Request {
	return testutil.NewJSONRequest(http.MethodPost, path, body)
}

func TestCalculateHandler(t *testing.T) {
	router, _ := newTestRouter()

	tests := []struct {
		name    string
		body    string
		status  int
		display string
	}{
		{name: "add", body: `{"a":2,"b":3,"operator":"+"}`, status: http.StatusOK, display: "5"},
		{name: "fraction", body: `{"a":1,"b":3,"operator":"/"}`, status: http.StatusOK, display: "0.3333333333"},
		{name: "divide by zero", body: `{"a":1,"b":0,"operator":"/"}`, status: http.StatusOK, display: ErrorDisplay},
		{name: "unknown operator", body: `{"a":1,"b":2,"operator":"mod"}`, status: http.StatusBadRequest},
		{name: "bad json", body: `{"a":`, status: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.ExecuteRequest(postJSON("/calculator/calculate", tc.body), router)
			testutil.CheckResponseCode(t, tc.status, w.Code)
			if tc.status != http.StatusOK {
				return
			}

			var resp CalculateResponse
			testutil.DecodeJSONBody(t, w.Body, &resp)
			if resp.Display != tc.display {
				t.Fatalf("expected display %q, got %q", tc.display, resp.Display)
			}
			if tc.display == ErrorDisplay && resp.Error == "" {
				t.Fatal("expected an error reason alongside the Error display")
			}
		})
	}
}

func TestEvaluateHandlerSteps(t *testing.T) {
	router, _ := newTestRouter()

	w := testutil.ExecuteRequest(postJSON("/calculator/evaluate", `{"tokens":["9","0",".","1","+","1","0","="]}`), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp EvaluateResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)

	if resp.Display != "100.1" {
		t.Fatalf("expected display 100.1, got %q", resp.Display)
	}
	if len(resp.Steps) != 8 {
		t.Fatalf("expected 8 steps, got %d", len(resp.Steps))
	}
	if resp.Steps[4].Kind != "binary" || resp.Steps[4].Display != "90.1" {
		t.Fatalf("unexpected step 4: %#v", resp.Steps[4])
	}
}

func TestEvaluateHandlerRejectsBadInput(t *testing.T) {
	router, _ := newTestRouter()

	for _, body := range []string{`{"tokens":[]}`, `{"tokens":["1","sqrt"]}`, `not json`} {
		t.Run(body, func(t *testing.T) {
			w := testutil.ExecuteRequest(postJSON("/calculator/evaluate", body), router)
			testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSessionHandlers(t *testing.T) {
	router, sessions := newTestRouter()

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/calculator/sessions", nil), router)
	testutil.CheckResponseCode(t, http.StatusCreated, w.Code)

	var snap Snapshot
	testutil.DecodeJSONBody(t, w.Body, &snap)

	for _, tok := range []string{"2", "^", "3", "="} {
		w = testutil.ExecuteRequest(postJSON("/calculator/sessions/"+snap.ID+"/press", `{"token":"`+tok+`"}`), router)
		testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	}
	testutil.DecodeJSONBody(t, w.Body, &snap)
	if snap.Display != "8" {
		t.Fatalf("expected display 8, got %q", snap.Display)
	}

	w = testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/calculator/sessions/"+snap.ID, nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	w = testutil.ExecuteRequest(postJSON("/calculator/sessions/"+snap.ID+"/press", `{"token":"Sci"}`), router)
	testutil.CheckResponseCode(t, http.StatusBadRequest, w.Code)

	w = testutil.ExecuteRequest(httptest.NewRequest(http.MethodDelete, "/calculator/sessions/"+snap.ID, nil), router)
	testutil.CheckResponseCode(t, http.StatusNoContent, w.Code)
	if sessions.Len() != 0 {
		t.Fatalf("expected no sessions, got %d", sessions.Len())
	}

	w = testutil.ExecuteRequest(postJSON("/calculator/sessions/"+snap.ID+"/press", `{"token":"1"}`), router)
	testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)

	w = testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/calculator/sessions/"+snap.ID, nil), router)
	testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)
}

func TestKeypadHandler(t *testing.T) {
	router, _ := newTestRouter()

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/calculator/keypad?scientific=true", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp KeypadResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if !resp.Scientific || len(resp.Rows) != 6 {
		t.Fatalf("expected scientific keypad with 6 rows, got %v / %d", resp.Scientific, len(resp.Rows))
	}
	if resp.Rows[0][0].Style.Background != "blue_700" {
		t.Fatalf("expected scientific style, got %#v", resp.Rows[0][0].Style)
	}
}
