package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"saledash/internal/geo"
)

func TestLocationFromIPWithoutDatabase(t *testing.T) {
	// No GeoLite2 database is configured in tests, so enrichment is a no-op.
	assert.Empty(t, geo.LocationFromIP("203.0.113.10"))
	assert.Empty(t, geo.LocationFromIP("not-an-ip"))
	assert.Empty(t, geo.LocationFromIP(""))
}
