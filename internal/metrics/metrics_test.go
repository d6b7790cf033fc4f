package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestCounters(t *testing.T) {
	Register()

	IncHTTP("GET /items", "200")
	IncHTTP("GET /items", "200")
	assert.Equal(t, 2.0, testutil.ToFloat64(httpRequests.WithLabelValues("GET /items", "200")))

	IncBookingTransition("APPROVED")
	assert.Equal(t, 1.0, testutil.ToFloat64(bookingTransitions.WithLabelValues("APPROVED")))
}
