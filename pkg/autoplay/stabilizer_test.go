package autoplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stabilizerFixture() (*fakeSurface, *ListStabilizer) {
	s := newFakeSurface()
	s.anchors = []*fakeAnchor{
		{href: "/g/classroom/c?md=a", title: " Intro \n", completed: true},
		{href: "/g/classroom/c?md=b", title: "Setup"},
		{href: "/g/classroom/c?md=c", title: "Wrap up"},
	}
	return s, NewListStabilizer(s, newFakeClock(), s.sel, 900)
}

func TestStabilizeDebouncesUntilCountRepeats(t *testing.T) {
	s, stab := stabilizerFixture()
	// the list grows for three rounds, then holds at 3; the loop must keep
	// going until the count has repeated stableStreakThreshold times
	counts := []int{1, 2, 3}
	for i := 0; i <= stableStreakThreshold; i++ {
		counts = append(counts, 3)
	}
	s.linkCounts = counts

	ix := stab.Stabilize(100)

	require.Len(t, ix, 3)
	// rounds 0..1 changed, round 2 started the streak; every round before the
	// breaking one scrolled
	assert.Equal(t, 2+stableStreakThreshold, s.evalCount(scriptScrollBy))
}

func TestStabilizeGivesUpAtMaxRounds(t *testing.T) {
	s, stab := stabilizerFixture()
	// oscillating counts never build a streak
	for i := 0; i < 6; i++ {
		s.linkCounts = append(s.linkCounts, 1+i%2)
	}

	ix := stab.Stabilize(6)

	// the snapshot still reads whatever is visible once the budget runs out
	require.Len(t, ix, 3)
	assert.Equal(t, 6, s.evalCount(scriptScrollBy))
}

func TestSnapshotReadsEntries(t *testing.T) {
	_, stab := stabilizerFixture()

	ix := stab.Snapshot()

	require.Len(t, ix, 3)
	assert.Equal(t, "a", ix[0].ID)
	assert.Equal(t, "/g/classroom/c?md=a", ix[0].Href)
	assert.Equal(t, "Intro", ix[0].Title, "titles are trimmed")
	assert.True(t, ix[0].Completed)
	assert.False(t, ix[1].Completed)
	assert.Equal(t, "c", ix[2].ID)
}

func TestSnapshotToleratesMissingHref(t *testing.T) {
	s := newFakeSurface()
	s.anchors = []*fakeAnchor{{title: "Broken entry"}}
	stab := NewListStabilizer(s, newFakeClock(), s.sel, 900)

	ix := stab.Snapshot()

	require.Len(t, ix, 1)
	assert.Empty(t, ix[0].ID)
	assert.Empty(t, ix[0].Href)
	assert.False(t, ix[0].Completed)
	assert.Equal(t, "Broken entry", ix[0].Title)
}

func TestSnapshotEmptyList(t *testing.T) {
	s := newFakeSurface()
	stab := NewListStabilizer(s, newFakeClock(), s.sel, 900)

	assert.Nil(t, stab.Snapshot())
}
