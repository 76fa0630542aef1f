package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Observe(t *testing.T) {
	c := NewCollector()

	c.ObserveLedger("search", time.Now(), nil)
	c.ObserveLedger("search", time.Now(), errors.New("boom"))
	c.ObserveMerge("Payment", "applied")
	c.ObserveBalancePoll("timer", nil)
	c.ObserveSubmission(errors.New("rejected"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.LedgerRequests.WithLabelValues("search", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.LedgerRequests.WithLabelValues("search", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Merges.WithLabelValues("Payment", "applied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.BalancePolls.WithLabelValues("timer", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Submissions.WithLabelValues("failure")))
}

func TestCollector_NilIsSafe(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveLedger("search", time.Now(), nil)
		c.ObserveMerge("Payment", "applied")
		c.ObserveBalancePoll("timer", nil)
		c.ObserveSubmission(nil)
	})
}

func TestNewRouter(t *testing.T) {
	c := NewCollector()
	c.ObserveSubmission(nil)

	srv := httptest.NewServer(NewRouter(c))
	defer srv.Close()

	t.Run("healthz", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "qwallet_send_submissions_total")
	})
}
