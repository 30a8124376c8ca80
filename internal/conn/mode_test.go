package conn

import "testing"

func TestSelectMode(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		want       Mode
	}{
		{"station", "station", ModeStation},
		{"explicit ap", "ap", ModeAccessPoint},
		{"missing config", "", ModeAccessPoint},
		{"garbage value", "bluetooth", ModeAccessPoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectMode(tt.configured); got != tt.want {
				t.Errorf("SelectMode(%q) = %v, want %v", tt.configured, got, tt.want)
			}
		})
	}
}

func TestMode_String(t *testing.T) {
	if ModeStation.String() != "Station" || ModeAccessPoint.String() != "AccessPoint" {
		t.Error("unexpected mode names")
	}
}
