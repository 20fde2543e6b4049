package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateKeySanitizesTimezoneSeparators(t *testing.T) {
	key := DateKey("2024-02-10", "America/Los_Angeles")

	assert.Equal(t, "2024-02-10_America-Los_Angeles", key)
}

func TestDateKeyNestedZoneIdentifiers(t *testing.T) {
	key := DateKey("2024-02-10", "America/Argentina/Buenos_Aires")

	assert.Equal(t, "2024-02-10_America-Argentina-Buenos_Aires", key)
	assert.NotContains(t, key, "/")
}

func TestDateKeyPlainZone(t *testing.T) {
	assert.Equal(t, "2024-02-10_UTC", DateKey("2024-02-10", "UTC"))
}
