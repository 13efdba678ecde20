package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeIntervals(t *testing.T) {
	tests := []struct {
		name string
		in   []interval
		want []interval
	}{
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
		{
			name: "disjoint stay separate",
			in:   []interval{{540, 600}, {660, 720}},
			want: []interval{{540, 600}, {660, 720}},
		},
		{
			name: "overlapping coalesce",
			in:   []interval{{540, 630}, {600, 720}},
			want: []interval{{540, 720}},
		},
		{
			name: "touching coalesce",
			in:   []interval{{540, 600}, {600, 660}},
			want: []interval{{540, 660}},
		},
		{
			name: "unsorted input",
			in:   []interval{{660, 720}, {540, 600}, {580, 650}},
			want: []interval{{540, 650}, {660, 720}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeIntervals(tt.in))
		})
	}
}

func TestSubtractIntervals(t *testing.T) {
	window := interval{540, 720} // 09:00–12:00

	tests := []struct {
		name string
		busy []interval
		want []interval
	}{
		{
			name: "no busy keeps window",
			busy: nil,
			want: []interval{{540, 720}},
		},
		{
			name: "middle split",
			busy: []interval{{600, 660}},
			want: []interval{{540, 600}, {660, 720}},
		},
		{
			name: "busy covering window",
			busy: []interval{{500, 760}},
			want: nil,
		},
		{
			name: "busy outside window ignored",
			busy: []interval{{400, 500}, {760, 800}},
			want: []interval{{540, 720}},
		},
		{
			name: "busy clipping the start",
			busy: []interval{{500, 570}},
			want: []interval{{570, 720}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subtractIntervals(window, tt.busy))
		})
	}
}

func TestGridStartsWithin(t *testing.T) {
	// 09:00–12:00 window, 60-minute session, 30-minute buffer: the last
	// start is 10:30 because 10:30 + 60 + 30 lands exactly on 12:00.
	got := gridStartsWithin(interval{540, 720}, 60, 30, 30)
	assert.Equal(t, []int{540, 570, 600, 630}, got)
}

func TestGridStartsWithinAlignsToGrid(t *testing.T) {
	// Free interval starting off-grid at 09:10 yields starts from 09:30.
	got := gridStartsWithin(interval{550, 720}, 30, 0, 30)
	assert.Equal(t, []int{570, 600, 630, 660, 690}, got)
}

func TestGridStartsWithinZeroDuration(t *testing.T) {
	assert.Nil(t, gridStartsWithin(interval{540, 720}, 0, 30, 30))
}

func TestCovers(t *testing.T) {
	free := []interval{{540, 600}, {660, 780}}
	assert.True(t, covers(free, interval{660, 780}))
	assert.True(t, covers(free, interval{700, 760}))
	assert.False(t, covers(free, interval{590, 670}))
	assert.False(t, covers(free, interval{780, 840}))
}

func TestExpandClampsAtMidnight(t *testing.T) {
	assert.Equal(t, interval{0, 90}, interval{10, 60}.expand(30))
}
