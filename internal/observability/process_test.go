package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "5с", FormatUptime(5*time.Second))
	assert.Equal(t, "2м 3с", FormatUptime(2*time.Minute+3*time.Second))
	assert.Equal(t, "1ч 0м 7с", FormatUptime(time.Hour+7*time.Second))
	assert.Equal(t, "1д 1ч 0м 0с", FormatUptime(25*time.Hour))
}

func TestProcessStats(t *testing.T) {
	ps, err := NewProcessStats()
	require.NoError(t, err)

	rss, err := ps.RSSMegabytes()
	require.NoError(t, err)
	assert.Greater(t, rss, 0.0)
	assert.Greater(t, HeapMegabytes(), 0.0)
	assert.NotEmpty(t, ps.Uptime())
}

func TestClampRatio(t *testing.T) {
	assert.Equal(t, 0.0, clampRatio(-1))
	assert.Equal(t, 0.5, clampRatio(0.5))
	assert.Equal(t, 1.0, clampRatio(3))
	assert.Equal(t, "localhost:4318", endpointName(""))
}
