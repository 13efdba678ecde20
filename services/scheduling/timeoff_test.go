package scheduling

import (
	"testing"

	"fotura/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlotLabel(t *testing.T) {
	tests := []struct {
		label   string
		want    int
		wantErr bool
	}{
		{label: "00:00", want: 0},
		{label: "09:00", want: 540},
		{label: "09:30", want: 570},
		{label: "23:30", want: 1410},
		{label: "24:00", wantErr: true},
		{label: "09:60", wantErr: true},
		{label: "9h30", wantErr: true},
		{label: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := parseSlotLabel(tt.label)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeSlotRunsContiguous(t *testing.T) {
	// 09:00 and 09:30 on a 30-minute grid collapse into one 09:00–10:00 block.
	runs, err := MergeSlotRuns([]string{"09:00", "09:30"}, 30)
	require.NoError(t, err)
	assert.Equal(t, []interval{{540, 600}}, runs)
}

func TestMergeSlotRunsSplitsOnGaps(t *testing.T) {
	runs, err := MergeSlotRuns([]string{"09:00", "09:30", "11:00", "14:00", "14:30"}, 30)
	require.NoError(t, err)
	assert.Equal(t, []interval{{540, 600}, {660, 690}, {840, 900}}, runs)
}

func TestMergeSlotRunsUnsortedAndDuplicated(t *testing.T) {
	runs, err := MergeSlotRuns([]string{"09:30", "09:00", "09:30"}, 30)
	require.NoError(t, err)
	assert.Equal(t, []interval{{540, 600}}, runs)
}

func TestMergeSlotRunsRejectsOffGrid(t *testing.T) {
	_, err := MergeSlotRuns([]string{"09:15"}, 30)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestMergeSlotRunsRejectsEmptySelection(t *testing.T) {
	_, err := MergeSlotRuns(nil, 30)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestTimeOffBlocksFromRunsAreComplete(t *testing.T) {
	// The blocks returned to the caller are the persisted records, so every
	// one carries its id and timestamp already.
	runs, err := MergeSlotRuns([]string{"09:00", "09:30", "11:00"}, 30)
	require.NoError(t, err)

	blocks := timeOffBlocksFromRuns("t1", testDate, "leave", models.BlockPersonalLeave, runs)
	require.Len(t, blocks, 2)

	seen := make(map[string]bool)
	for _, blk := range blocks {
		assert.NotEmpty(t, blk.ID)
		assert.False(t, seen[blk.ID], "block ids must be unique")
		seen[blk.ID] = true
		assert.False(t, blk.CreatedAt.IsZero())
		assert.Equal(t, "t1", blk.TechnicianID)
		assert.Equal(t, testDate, blk.Date)
		assert.Equal(t, models.BlockPersonalLeave, blk.Type)
	}
	assert.Equal(t, 540, blocks[0].Start)
	assert.Equal(t, 600, blocks[0].End)
	assert.Equal(t, 660, blocks[1].Start)
	assert.Equal(t, 690, blocks[1].End)
}

func TestMergeSlotRunsRejectsBadLabel(t *testing.T) {
	_, err := MergeSlotRuns([]string{"09:00", "morning"}, 30)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
