package version

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		local    string
		remote   string
		expected Status
	}{
		{"equal versions", "2.0", "2.0", UpToDate},
		{"local older", "1.0", "2.0", OutOfDate},
		{"local newer", "2.0", "1.0", Overdated},
		{"trailing zero segment equal", "2.0", "2.0.0", UpToDate},
		{"patch ahead", "2.1.4", "2.1.3", Overdated},
		{"minor behind", "2.1.4", "2.2.0", OutOfDate},
		{"multi digit segments", "1.10.0", "1.9.0", Overdated},
		{"unrecognized suffix beats rc", "2.0.0PRE9H2", "2.0.0RC3", Overdated},
		{"snapshot below release", "7.1.0-SNAPSHOT", "7.1.0", OutOfDate},
		{"rc below release", "2.0.0-RC3", "2.0.0", OutOfDate},
		{"release above beta", "2.0.0", "2.0.0-beta2", Overdated},
		{"alpha below beta", "1.0-alpha1", "1.0-beta1", OutOfDate},
		{"rc ordering numeric", "1.0-RC1", "1.0-RC2", OutOfDate},
		{"case insensitive", "1.0-RC1", "1.0-rc1", UpToDate},
		{"empty local", "", "1.0", OutOfDate},
		{"empty remote sentinel", "1.0", "", Overdated},
		{"both empty", "", "", UpToDate},
		{"garbage degrades to minimal", "???", "1.0", OutOfDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compare(tt.local, tt.remote)
			if result != tt.expected {
				t.Errorf("Compare(%q, %q) = %v, want %v", tt.local, tt.remote, result, tt.expected)
			}
		})
	}
}

func TestCompareIsTotal(t *testing.T) {
	// Every ordered pair must be the inverse of its swap.
	versions := []string{"", "1.0", "2.0.0PRE9H2", "2.0.0RC3", "7.1.0-SNAPSHOT", "banana", "0.6.0PRE3"}
	for _, a := range versions {
		for _, b := range versions {
			ab := Compare(a, b)
			ba := Compare(b, a)
			if ab == UpToDate && ba != UpToDate {
				t.Errorf("Compare(%q, %q) equal but Compare(%q, %q) = %v", a, b, b, a, ba)
			}
			if ab == OutOfDate && ba != Overdated {
				t.Errorf("Compare(%q, %q) = OutOfDate but Compare(%q, %q) = %v", a, b, b, a, ba)
			}
		}
	}
}

func TestStatusString(t *testing.T) {
	if OutOfDate.String() != "Version is outdated" {
		t.Errorf("unexpected OutOfDate string: %s", OutOfDate.String())
	}
	if UpToDate.String() != "Version is up to date" {
		t.Errorf("unexpected UpToDate string: %s", UpToDate.String())
	}
	if Overdated.String() != "Local version is newer than Remote version" {
		t.Errorf("unexpected Overdated string: %s", Overdated.String())
	}
}
