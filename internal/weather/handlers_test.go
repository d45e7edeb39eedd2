package weather

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"keypad-calculator/internal/testutil"
)

func newTestRouter(t *testing.T, jma *fakeJMA) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(NewService(jma.client(), newTestStore(t))))
	return r
}

func TestAreasHandlerGroupsByCenter(t *testing.T) {
	router := newTestRouter(t, newFakeJMA(t))

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/weather/areas", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp AreasResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)

	if len(resp.Centers) != 2 {
		t.Fatalf("expected 2 centers, got %d", len(resp.Centers))
	}
	if resp.Centers[0].Center != "北海道地方" || len(resp.Centers[0].Areas) != 2 {
		t.Fatalf("unexpected first group: %#v", resp.Centers[0])
	}
}

func TestForecastHandlerDaySelection(t *testing.T) {
	router := newTestRouter(t, newFakeJMA(t))

	tests := []struct {
		name   string
		query  string
		status int
		days   int
	}{
		{name: "all", query: "", status: http.StatusOK, days: 3},
		{name: "tomorrow", query: "?day=1", status: http.StatusOK, days: 1},
		{name: "out of range", query: "?day=5", status: http.StatusNotFound},
		{name: "not a number", query: "?day=x", status: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/weather/forecast/130000"+tc.query, nil)
			w := testutil.ExecuteRequest(r, router)
			testutil.CheckResponseCode(t, tc.status, w.Code)

			if tc.status != http.StatusOK {
				return
			}
			var resp ForecastResponse
			testutil.DecodeJSONBody(t, w.Body, &resp)
			if len(resp.Days) != tc.days {
				t.Fatalf("expected %d days, got %d", tc.days, len(resp.Days))
			}
			if resp.AreaCode != "130000" {
				t.Fatalf("expected area code 130000, got %q", resp.AreaCode)
			}
		})
	}
}

func TestForecastHandlerUpstreamDownNothingCached(t *testing.T) {
	jma := newFakeJMA(t)
	jma.forecastDown.Store(true)
	router := newTestRouter(t, jma)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/weather/forecast/130000", nil), router)
	testutil.CheckResponseCode(t, http.StatusBadGateway, w.Code)
}
