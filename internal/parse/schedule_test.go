package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_ParsesFreeFormObject(t *testing.T) {
	raw := `{
		"image_analysis": {"space_type": "bathroom", "current_phase": "drywall hung"},
		"schedule": [
			{"day": 1, "date": "Mon 12/16", "task": "Tape and mud", "trade": "Drywall", "crew_size": 2}
		],
		"assumptions": ["No weekend work"],
		"confidence_level": "Medium"
	}`

	got := Schedule(raw)
	require.True(t, got.Success)
	assert.Contains(t, got.Data, "schedule")
	assert.Contains(t, got.Data, "image_analysis")
	assert.Equal(t, "Medium", got.Data["confidence_level"])
}

func TestSchedule_FencedReply(t *testing.T) {
	raw := "Here you go:\n```json\n{\"schedule\": [], \"assumptions\": []}\n```"

	got := Schedule(raw)
	require.True(t, got.Success)
	assert.Contains(t, got.Data, "schedule")
}

func TestSchedule_UnparseableReply(t *testing.T) {
	raw := "I can't tell what this space is. Please upload a clearer photo."

	got := Schedule(raw)
	assert.False(t, got.Success)
	assert.Equal(t, "Unable to parse schedule response", got.Err)
	assert.Equal(t, raw, got.Raw)
	assert.Nil(t, got.Data)
}
