package timezones

import "testing"

func TestLoad(t *testing.T) {
	if err := Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestCuratedZonesResolve(t *testing.T) {
	if err := Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(zones) == 0 {
		t.Fatal("curated list is empty")
	}
	for _, z := range zones {
		if z.Label == "" {
			t.Errorf("zone %q has empty Label", z.ID)
		}
		if _, err := Location(z.ID); err != nil {
			t.Errorf("Location(%q) error = %v", z.ID, err)
		}
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"Asia/Colombo", "Sri Lanka (Colombo)"},
		{"UTC", "UTC"},
		{"Invalid/Timezone", "Invalid/Timezone"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Label(tt.id); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"America/New_York", true},
		{"UTC", true},
		{"Europe/London", true},
		{"Asia/Colombo", true},
		{"Invalid/Timezone", false},
		{"", false},
		{"Antarctica/Troll", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := Valid(tt.id); got != tt.want {
				t.Errorf("Valid(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	loc, err := Location("Asia/Colombo")
	if err != nil {
		t.Fatalf("Location() error = %v", err)
	}
	if loc.String() != "Asia/Colombo" {
		t.Errorf("Location().String() = %q", loc.String())
	}

	if _, err := Location("Antarctica/Troll"); err == nil {
		t.Error("Location() accepted a zone outside the curated list")
	}
}
