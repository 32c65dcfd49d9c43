package displaytime

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetZone() {
	displayLoc = nil
	displayOnce = sync.Once{}
	initErr = nil
}

func TestFormat_DefaultTimezone(t *testing.T) {
	resetZone()
	defer resetZone()

	require.NoError(t, Init(""))

	stored := time.Date(2024, 3, 1, 16, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-02T00:30:00+08:00", Format(stored))
}

func TestFormat_ConfiguredTimezoneChangesOutput(t *testing.T) {
	resetZone()
	defer resetZone()

	require.NoError(t, Init("America/New_York"))

	stored := time.Date(2024, 3, 1, 16, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01T11:30:00-05:00", Format(stored))
}

func TestInit_InvalidTimezone(t *testing.T) {
	resetZone()
	defer resetZone()

	assert.Error(t, Init("Not/AZone"))
}

func TestLocation_AutoInitializesToDefault(t *testing.T) {
	resetZone()
	defer resetZone()

	assert.Equal(t, DefaultTimezone, Location().String())
}

func TestFormatPtr_Nil(t *testing.T) {
	resetZone()
	defer resetZone()

	assert.Equal(t, "", FormatPtr(nil))

	stored := time.Date(2024, 6, 10, 4, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-10T12:00:00+08:00", FormatPtr(&stored))
}
