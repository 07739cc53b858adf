package dto

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateOnlyUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		err   bool
	}{
		{name: "plain date", input: `"2024-05-10"`, want: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)},
		{name: "date-time without zone", input: `"2024-05-10T09:30:00"`, want: time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)},
		{name: "rfc3339", input: `"2024-05-10T09:30:00Z"`, want: time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)},
		{name: "null stays zero", input: `null`},
		{name: "garbage", input: `"next tuesday"`, err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DateOnly
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.err {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !d.Time.Equal(tt.want) {
				t.Errorf("got %v, want %v", d.Time, tt.want)
			}
		})
	}
}

func TestDateOnlyMarshal(t *testing.T) {
	d := DateOnly{Time: time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2024-05-10"` {
		t.Errorf("marshal = %s, want \"2024-05-10\"", b)
	}

	var zero DateOnly
	b, err = json.Marshal(zero)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "null" {
		t.Errorf("zero marshal = %s, want null", b)
	}
}

func TestDateOnlyToTime(t *testing.T) {
	var zero DateOnly
	if zero.ToTime() != nil {
		t.Error("zero value should map to nil")
	}

	d := DateOnly{Time: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)}
	got := d.ToTime()
	if got == nil || !got.Equal(d.Time) {
		t.Errorf("ToTime = %v, want %v", got, d.Time)
	}
}
