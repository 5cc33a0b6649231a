// Package version compares free-form plugin version strings.
//
// Registry version labels are rarely clean semantic versions: suffixes like
// "2.0.0PRE9H2", "7.1.0-SNAPSHOT" or "2.1.4-RC3" are all common. Comparison
// therefore uses a lenient, total ordering in the style of Maven's
// ComparableVersion: strings are tokenized on '.', '-', '_', '+' and on
// digit/letter transitions, numeric tokens compare numerically, and known
// pre-release qualifiers (alpha, beta, milestone, rc, snapshot) order below a
// clean release of the same numeric prefix while unrecognized qualifiers
// order above it. Parsing never fails; anything unrecognizable degrades to a
// minimal value.
package version

import "strings"

// Status is the result of comparing a local version against a remote one.
type Status int

const (
	// OutOfDate means the local version is older than the remote version.
	OutOfDate Status = iota
	// UpToDate means the local and remote versions are equal.
	UpToDate
	// Overdated means the local version is newer than the remote version.
	Overdated
)

func (s Status) String() string {
	switch s {
	case OutOfDate:
		return "Version is outdated"
	case UpToDate:
		return "Version is up to date"
	case Overdated:
		return "Local version is newer than Remote version"
	default:
		return "Version status unknown"
	}
}

// Compare parses both version strings leniently and returns the three-way
// status of local relative to remote. It never fails: malformed input on
// either side degrades to a minimal version value.
func Compare(local, remote string) Status {
	switch c := compare(tokenize(local), tokenize(remote)); {
	case c < 0:
		return OutOfDate
	case c > 0:
		return Overdated
	default:
		return UpToDate
	}
}

// token is one segment of a version string: either a run of digits or a run
// of letters (a qualifier). Exactly one of num/qual is meaningful.
type token struct {
	num     string // digits with leading zeros trimmed; "" when qualifier
	qual    string // lowercase qualifier; "" when numeric
	numeric bool
}

func tokenize(v string) []token {
	var tokens []token
	flush := func(run string, numeric bool) {
		if run == "" {
			return
		}
		if numeric {
			tokens = append(tokens, token{num: trimLeadingZeros(run), numeric: true})
		} else {
			tokens = append(tokens, token{qual: run})
		}
	}

	v = strings.ToLower(v)
	run := ""
	runNumeric := false
	for _, r := range v {
		switch {
		case r >= '0' && r <= '9':
			if run != "" && !runNumeric {
				flush(run, runNumeric)
				run = ""
			}
			run += string(r)
			runNumeric = true
		case r >= 'a' && r <= 'z':
			if run != "" && runNumeric {
				flush(run, runNumeric)
				run = ""
			}
			run += string(r)
			runNumeric = false
		default:
			// Separator ('.', '-', '_', '+', spaces, anything else).
			flush(run, runNumeric)
			run = ""
		}
	}
	flush(run, runNumeric)
	return tokens
}

func trimLeadingZeros(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// Qualifier ranks, low to high. A missing token on one side compares as a
// clean release, so recognized pre-release qualifiers sort below it and
// unrecognized qualifiers sort above it.
const (
	rankAlpha = iota + 1
	rankBeta
	rankMilestone
	rankRC
	rankSnapshot
	rankRelease
	rankSP
	rankUnknown
)

func qualifierRank(q string) int {
	switch q {
	case "alpha", "a":
		return rankAlpha
	case "beta", "b":
		return rankBeta
	case "milestone", "m":
		return rankMilestone
	case "rc", "cr":
		return rankRC
	case "snapshot", "dev":
		return rankSnapshot
	case "", "ga", "final", "release":
		return rankRelease
	case "sp":
		return rankSP
	default:
		return rankUnknown
	}
}

func compare(a, b []token) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var at, bt token
		hasA, hasB := i < len(a), i < len(b)
		if hasA {
			at = a[i]
		}
		if hasB {
			bt = b[i]
		}

		switch {
		case !hasA:
			if c := compareAgainstMissing(bt); c != 0 {
				return -c
			}
		case !hasB:
			if c := compareAgainstMissing(at); c != 0 {
				return c
			}
		case at.numeric && bt.numeric:
			if c := compareNumeric(at.num, bt.num); c != 0 {
				return c
			}
		case at.numeric != bt.numeric:
			// A numeric token outranks any qualifier ("1.0.1" > "1.0.rc").
			if at.numeric {
				return 1
			}
			return -1
		default:
			if c := compareQualifiers(at.qual, bt.qual); c != 0 {
				return c
			}
		}
	}
	return 0
}

// compareAgainstMissing orders a trailing token against the implicit end of
// the shorter version: "1.0.0" == "1.0", "1.0.1" > "1.0", "1.0-rc" < "1.0".
func compareAgainstMissing(t token) int {
	if t.numeric {
		if t.num == "0" {
			return 0
		}
		return 1
	}
	return compareQualifiers(t.qual, "")
}

// compareNumeric compares two digit strings with leading zeros removed.
// Length comparison avoids overflow on absurd inputs.
func compareNumeric(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func compareQualifiers(a, b string) int {
	ra, rb := qualifierRank(a), qualifierRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	if ra == rankUnknown {
		return strings.Compare(a, b)
	}
	return 0
}
