package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"presence-stats-service/internal/stats/core/domain"
)

var (
	alice = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	bob   = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	carol = uuid.MustParse("00000000-0000-0000-0000-00000000000c")
)

func statsOf(pairs map[uuid.UUID]int64) domain.StatsMap {
	out := domain.StatsMap{}
	for id, ms := range pairs {
		out[id] = domain.Stat{UserID: id, DurationMS: ms}
	}
	return out
}

func TestMerge_SumsAndInserts(t *testing.T) {
	a := statsOf(map[uuid.UUID]int64{alice: 100, bob: 5})
	b := statsOf(map[uuid.UUID]int64{alice: 50, carol: 0})

	got := domain.Merge(a, b)

	require.Equal(t, statsOf(map[uuid.UUID]int64{alice: 150, bob: 5, carol: 0}), got)
	// operands are untouched
	require.Equal(t, int64(100), a[alice].DurationMS)
	require.Len(t, b, 2)
}

func TestMerge_AssociativeAndCommutative(t *testing.T) {
	x := statsOf(map[uuid.UUID]int64{alice: 1, bob: 2})
	y := statsOf(map[uuid.UUID]int64{bob: 30, carol: 40})
	z := statsOf(map[uuid.UUID]int64{alice: 500, carol: 600})

	left := domain.Merge(domain.Merge(x, y), z)
	right := domain.Merge(x, domain.Merge(y, z))
	swapped := domain.Merge(y, domain.Merge(x, z))

	require.Equal(t, left, right)
	require.Equal(t, left, swapped)
}

func TestMergeInto_DoesNotMutateSource(t *testing.T) {
	dst := statsOf(map[uuid.UUID]int64{alice: 1})
	src := statsOf(map[uuid.UUID]int64{alice: 2, bob: 3})

	dst.MergeInto(src)
	dst.MergeInto(src)

	require.Equal(t, int64(5), dst[alice].DurationMS)
	require.Equal(t, int64(6), dst[bob].DurationMS)
	require.Equal(t, int64(2), src[alice].DurationMS)
}

func TestMerge_EmptyMaps(t *testing.T) {
	require.Empty(t, domain.Merge(nil, nil))
	x := statsOf(map[uuid.UUID]int64{alice: 7})
	require.Equal(t, x, domain.Merge(x, nil))
	require.Equal(t, x, domain.Merge(domain.StatsMap{}, x))
}

func TestRanked_OrdersByDurationThenUser(t *testing.T) {
	m := statsOf(map[uuid.UUID]int64{alice: 10, bob: 30, carol: 10})

	got := m.Ranked()

	require.Len(t, got, 3)
	require.Equal(t, bob, got[0].UserID)
	require.Equal(t, alice, got[1].UserID)
	require.Equal(t, carol, got[2].UserID)
}
