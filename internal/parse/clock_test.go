package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tour-planner-backend/internal/itinerary"
)

func TestClock(t *testing.T) {
	testCases := []struct {
		in      string
		want    itinerary.Clock
		wantErr bool
	}{
		{in: "9:00", want: itinerary.Clock{Hour: 9}},
		{in: "09:00", want: itinerary.Clock{Hour: 9}},
		{in: "0930", want: itinerary.Clock{Hour: 9, Minute: 30}},
		{in: " 9:00 AM ", want: itinerary.Clock{Hour: 9}},
		{in: "12:15 am", want: itinerary.Clock{Hour: 0, Minute: 15}},
		{in: "12:00 PM", want: itinerary.Clock{Hour: 12}},
		{in: "09:00pm", want: itinerary.Clock{Hour: 21}},
		{in: "7 p.m.", want: itinerary.Clock{Hour: 19}},
		{in: "11 a.m.", want: itinerary.Clock{Hour: 11}},
		{in: "7pm", want: itinerary.Clock{Hour: 19}},
		{in: "23:59", want: itinerary.Clock{Hour: 23, Minute: 59}},
		{in: "24:00", wantErr: true},
		{in: "13:00 pm", wantErr: true},
		{in: "9:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Clock(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMinutes(t *testing.T) {
	testCases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "90", want: 90},
		{in: "90m", want: 90},
		{in: "90 min", want: 90},
		{in: "45 minutes", want: 45},
		{in: "1h30m", want: 90},
		{in: "1.5h", want: 90},
		{in: "0.25h", want: 15},
		{in: "0.1h", want: 6},
		{in: "2.50 hours", want: 150},
		{in: "1.01h", wantErr: true},
		{in: "0.001h", wantErr: true},
		{in: "2 hours", want: 120},
		{in: "1h 15m", want: 75},
		{in: "30s", wantErr: true},
		{in: "soon", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Minutes(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDate(t *testing.T) {
	dubai := time.FixedZone("GST", 4*60*60)

	d, err := Date("2024-06-01", dubai)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, dubai), d)

	d, err = Date("2024-06-01", nil)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, d.Location())

	_, err = Date("01/06/2024", dubai)
	assert.EqualError(t, err, `invalid date "01/06/2024", want YYYY-MM-DD`)
}
