package structures

import (
	"reflect"
	"testing"
	"time"
)

func Test_parseSlackTS(t *testing.T) {
	type args struct {
		timestamp string
	}
	tests := []struct {
		name    string
		args    args
		want    time.Time
		wantErr bool
	}{
		{"valid time", args{"1534552745.065949"}, time.UnixMicro(1534552745065949).UTC(), false},
		{"another valid time", args{"1638494510.037400"}, time.Date(2021, 12, 3, 1, 21, 50, 37400000, time.UTC), false},
		{"time without millis", args{"0"}, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"invalid time", args{"x"}, time.Time{}, true},
		{"invalid time", args{"x.x"}, time.Time{}, true},
		{"invalid time", args{"4.x"}, time.Time{}, true},
		{"empty", args{""}, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSlackTS(tt.args.timestamp)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseSlackTS() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSlackTS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatSlackTS(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"valid time", time.UnixMicro(1534552745065949).UTC(), "1534552745.065949"},
		{"zero time", time.Time{}, ""},
		{"before epoch", time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSlackTS(tt.ts); got != tt.want {
				t.Errorf("FormatSlackTS() = %v, want %v", got, tt.want)
			}
		})
	}
}
