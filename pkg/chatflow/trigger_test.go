package chatflow

import (
	"testing"

	"github.com/randalmurphal/chatflow/pkg/chatflow/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchFlow_FirstMatchWins(t *testing.T) {
	flows := []*flow.Flow{
		{ID: "greetings", DeviceID: "device-1", Keywords: []flow.Keyword{{Term: "hello", Type: flow.MatchContains}}},
		{ID: "catch-all", DeviceID: "device-1", Keywords: []flow.Keyword{{Term: "hel", Type: flow.MatchContains}}},
	}

	got := MatchFlow(flows, "hello there")
	require.NotNil(t, got)
	assert.Equal(t, "greetings", got.ID)
}

func TestMatchFlow_NoMatch(t *testing.T) {
	flows := []*flow.Flow{
		{ID: "menu", DeviceID: "device-1", Keywords: []flow.Keyword{{Term: "menu", Type: flow.MatchExact}}},
	}

	assert.Nil(t, MatchFlow(flows, "good morning"))
	assert.Nil(t, MatchFlow(nil, "anything"))
}

// A flow whose device assignment was removed must never trigger, even when
// its keywords still match.
func TestMatchFlow_SkipsOrphanedFlows(t *testing.T) {
	flows := []*flow.Flow{
		{ID: "orphan", DeviceID: "", Keywords: []flow.Keyword{{Term: "hi", Type: flow.MatchContains}}},
		{ID: "assigned", DeviceID: "device-1", Keywords: []flow.Keyword{{Term: "hi", Type: flow.MatchContains}}},
	}

	got := MatchFlow(flows, "hi")
	require.NotNil(t, got)
	assert.Equal(t, "assigned", got.ID)
}

func TestMatchFlow_ExactVsContains(t *testing.T) {
	flows := []*flow.Flow{
		{ID: "exact", DeviceID: "device-1", Keywords: []flow.Keyword{{Term: "menu", Type: flow.MatchExact}}},
		{ID: "loose", DeviceID: "device-1", Keywords: []flow.Keyword{{Term: "menu", Type: flow.MatchContains}}},
	}

	got := MatchFlow(flows, "show me the menu")
	require.NotNil(t, got)
	assert.Equal(t, "loose", got.ID)

	got = MatchFlow(flows, "MENU")
	require.NotNil(t, got)
	assert.Equal(t, "exact", got.ID)
}
