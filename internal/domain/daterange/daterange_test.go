package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, start, end string) DateRange {
	t.Helper()
	r, err := Parse(start, end)
	require.NoError(t, err)
	return r
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{name: "正常な期間", start: "2024-07-01", end: "2024-07-10"},
		{name: "1日だけの期間", start: "2024-07-01", end: "2024-07-01"},
		{name: "開始日と終了日が逆転", start: "2024-07-10", end: "2024-07-01", wantErr: ErrInvalidRange},
		{name: "開始日の形式が不正", start: "01/07/2024", end: "2024-07-10", wantErr: ErrInvalidDate},
		{name: "終了日の形式が不正", start: "2024-07-01", end: "not-a-date", wantErr: ErrInvalidDate},
		{name: "存在しない日付", start: "2024-02-30", end: "2024-03-01", wantErr: ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse(tt.start, tt.end)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.start, r.StartString())
			assert.Equal(t, tt.end, r.EndString())
		})
	}
}

func TestDateRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    DateRange
		b    DateRange
		want bool
	}{
		{
			name: "完全に重なる",
			a:    mustParse(t, "2024-07-01", "2024-07-10"),
			b:    mustParse(t, "2024-07-01", "2024-07-10"),
			want: true,
		},
		{
			name: "部分的に重なる",
			a:    mustParse(t, "2024-07-01", "2024-07-10"),
			b:    mustParse(t, "2024-07-05", "2024-07-15"),
			want: true,
		},
		{
			name: "内包する",
			a:    mustParse(t, "2024-07-01", "2024-07-31"),
			b:    mustParse(t, "2024-07-10", "2024-07-12"),
			want: true,
		},
		{
			name: "終了日と開始日が同日（境界の接触も重なり）",
			a:    mustParse(t, "2024-07-01", "2024-07-10"),
			b:    mustParse(t, "2024-07-10", "2024-07-15"),
			want: true,
		},
		{
			name: "1日空いている",
			a:    mustParse(t, "2024-07-01", "2024-07-10"),
			b:    mustParse(t, "2024-07-11", "2024-07-15"),
			want: false,
		},
		{
			name: "完全に離れている",
			a:    mustParse(t, "2024-07-01", "2024-07-05"),
			b:    mustParse(t, "2024-08-01", "2024-08-05"),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// 対称性: overlaps(A,B) == overlaps(B,A)
			assert.Equal(t, tt.a.Overlaps(tt.b), tt.b.Overlaps(tt.a))
		})
	}
}

func TestDateRange_Contains(t *testing.T) {
	r := mustParse(t, "2024-07-01", "2024-07-10")
	day := func(s string) time.Time {
		d, err := time.ParseInLocation(Layout, s, time.UTC)
		require.NoError(t, err)
		return d
	}
	assert.True(t, r.Contains(day("2024-07-01")))
	assert.True(t, r.Contains(day("2024-07-10")))
	assert.True(t, r.Contains(day("2024-07-05")))
	assert.False(t, r.Contains(day("2024-06-30")))
	assert.False(t, r.Contains(day("2024-07-11")))
}

func TestDateRange_EndedBefore(t *testing.T) {
	r := mustParse(t, "2024-07-01", "2024-07-10")
	day := func(s string) time.Time {
		d, err := time.ParseInLocation(Layout, s, time.UTC)
		require.NoError(t, err)
		return d
	}
	assert.True(t, r.EndedBefore(day("2024-07-11")))
	assert.False(t, r.EndedBefore(day("2024-07-10")))
	assert.False(t, r.EndedBefore(day("2024-07-05")))
}

func TestNew_Truncates(t *testing.T) {
	start := time.Date(2024, 7, 1, 15, 30, 0, 0, time.UTC)
	end := time.Date(2024, 7, 10, 8, 0, 0, 0, time.UTC)
	r, err := New(start, end)
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", r.StartString())
	assert.Equal(t, "2024-07-10", r.EndString())
	assert.Equal(t, 0, r.Start.Hour())
}
