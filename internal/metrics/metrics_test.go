package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Instrument())
	r.GET("/api/matches/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/matches/:id", "204"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/matches/abc", nil))

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/matches/:id", "204")))
}

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(transferClaims.WithLabelValues("expired"))
	RecordTransferClaim("expired")
	assert.Equal(t, before+1, testutil.ToFloat64(transferClaims.WithLabelValues("expired")))

	SetLiveSessions(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(liveSessions))

	RecordSnapshotWrite(false, 0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(snapshotWrites.WithLabelValues("error")), 1.0)
}
