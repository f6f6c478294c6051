package tsdb

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chantelleNokue/smart-helmet-backend/pkg/common"
	"github.com/chantelleNokue/smart-helmet-backend/pkg/models"
)

type fakeInflux struct {
	mu     sync.Mutex
	bodies []string
	query  []string
	status int
}

func (f *fakeInflux) handler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/v2/write" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.bodies = append(f.bodies, string(body))
	f.query = append(f.query, r.URL.RawQuery)
	f.mu.Unlock()
	w.WriteHeader(f.status)
}

func float(v float64) *float64 { return &v }

func TestInfluxSinkWritesLineProtocol(t *testing.T) {
	common.SetTestLoggerNop()

	fake := &fakeInflux{status: http.StatusNoContent}
	srv := httptest.NewServer(http.HandlerFunc(fake.handler))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "mine-org", "helmets")
	defer sink.Close()

	err := sink.WriteReading(context.Background(), "H1", models.SensorReading{
		Timestamp:   1718000000,
		Temperature: float(31.5),
		GasLevel:    float(220),
		Location:    "Shaft3",
		PanicAlert:  true,
	})
	require.NoError(t, err)

	require.Len(t, fake.bodies, 1)
	line := fake.bodies[0]
	assert.Contains(t, line, "helmet_reading,helmet_id=H1,location=Shaft3 ")
	assert.Contains(t, line, "temperature=31.5")
	assert.Contains(t, line, "gasLevel=220")
	assert.Contains(t, line, "panicAlert=true")
	assert.NotContains(t, line, "humidity=")
	assert.Contains(t, line, "1718000000000000000")
	assert.Contains(t, fake.query[0], "bucket=helmets")
	assert.Contains(t, fake.query[0], "org=mine-org")
}

func TestInfluxSinkSurfacesServerErrors(t *testing.T) {
	common.SetTestLoggerNop()

	fake := &fakeInflux{status: http.StatusUnauthorized}
	srv := httptest.NewServer(http.HandlerFunc(fake.handler))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "bad", "org", "bucket")
	defer sink.Close()

	err := sink.WriteReading(context.Background(), "H1", models.SensorReading{Timestamp: 1718000000})
	assert.Error(t, err)
}

func TestNopSink(t *testing.T) {
	common.SetTestLoggerNop()

	var s ReadingSink = NopSink{}
	assert.NoError(t, s.WriteReading(context.Background(), "H1", models.SensorReading{}))
	s.Close()
}
