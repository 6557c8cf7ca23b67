package shared

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/riceinspect/internal/inspection"
)

func TestPageSizeOptions(t *testing.T) {
	options, selected := PageSizeOptions(50)
	require.Len(t, options, 4)
	require.Equal(t, 2, selected)
	require.Equal(t, "50", options[2].Value)
	require.Equal(t, "current", options[2].Hint)
	require.Empty(t, options[0].Hint)
}

func TestPageSizeOptions_UnknownCurrent(t *testing.T) {
	_, selected := PageSizeOptions(7)
	require.Zero(t, selected)
}

func TestSamplingOptions(t *testing.T) {
	options := SamplingOptions([]inspection.SamplingPoint{inspection.SamplingOther})
	require.Len(t, options, 3)
	for _, o := range options {
		require.Equal(t, o.Value == string(inspection.SamplingOther), o.Selected, o.Value)
	}
}

func TestStandardOptions(t *testing.T) {
	options := StandardOptions([]inspection.Standard{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}})
	require.Equal(t, "B", options[1].Label)
	require.Equal(t, "2", options[1].Value)
}
