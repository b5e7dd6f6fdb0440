package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"mutual/internal/escrow"
	"mutual/internal/models"
)

func TestEmit(t *testing.T) {
	m := New()
	deal := &models.Deal{ID: "d1", CurrencyID: "usdc"}
	m.Emit(escrow.Event{Type: escrow.EventTypeDealClaimed, Deal: deal, Attributes: map[string]string{"claimed": "600"}})
	m.Emit(escrow.Event{Type: escrow.EventTypeDisputeResolved, Deal: deal, Attributes: map[string]string{"kolAmount": "300", "ownerAmount": "100"}})
	m.Emit(escrow.Event{Type: escrow.EventTypeMaxClaimablePercentageUpdated})

	require.Equal(t, float64(900), testutil.ToFloat64(m.released.WithLabelValues("usdc")))
	require.Equal(t, float64(100), testutil.ToFloat64(m.refunded.WithLabelValues("usdc")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.events.WithLabelValues(escrow.EventTypeMaxClaimablePercentageUpdated)))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/deals/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/metrics", m.Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/deals/abc", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("/deals/:id", "GET", "404")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.Contains(w.Body.String(), "mutual_http_requests_total"))
}
