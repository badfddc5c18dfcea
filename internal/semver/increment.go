package semver

import (
	"fmt"
	"strconv"
	"strings"
)

// Level names the component an increment applies to.
type Level string

const (
	LevelMajor      Level = "major"
	LevelMinor      Level = "minor"
	LevelPatch      Level = "patch"
	LevelPremajor   Level = "premajor"
	LevelPreminor   Level = "preminor"
	LevelPrepatch   Level = "prepatch"
	LevelPrerelease Level = "prerelease"

	// levelPre bumps only the prerelease part; it is not user facing.
	levelPre Level = "pre"
)

// Levels lists the user-facing increment levels.
var Levels = []Level{
	LevelMajor,
	LevelMinor,
	LevelPatch,
	LevelPremajor,
	LevelPreminor,
	LevelPrepatch,
	LevelPrerelease,
}

// ParseLevel validates a level name.
func ParseLevel(raw string) (Level, error) {
	for _, l := range Levels {
		if string(l) == strings.ToLower(strings.TrimSpace(raw)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("semver: unknown increment level %q", raw)
}

// IsPre reports whether l is one of the pre* levels.
func (l Level) IsPre() bool {
	switch l {
	case LevelPremajor, LevelPreminor, LevelPrepatch, LevelPrerelease:
		return true
	}
	return false
}

// Increment computes the version following current at the given level.
//
// Without forcePreid the usual npm rules apply, preid naming the prerelease
// identifier for pre* levels. With forcePreid and a plain level, the plain
// increment is computed and "-<preid>" is appended verbatim (1.2.3 + patch +
// beta => 1.2.4-beta). A patch increment first drops a prerelease that holds
// a non-numeric identifier, so 1.2.3-beta moves on to 1.2.4-beta instead of
// collapsing onto 1.2.3.
func Increment(current string, level Level, preid string, forcePreid bool) (string, error) {
	v, err := ParseVersion(current)
	if err != nil {
		return "", err
	}
	if level != levelPre && !isLevel(level) {
		return "", fmt.Errorf("semver: unknown increment level %q", level)
	}

	p := partsOf(v)
	if forcePreid && preid != "" && !level.IsPre() {
		if level == LevelPatch && hasAlphaIdentifier(p.pre) {
			p.pre = nil
		}
		p.inc(level, "")
		p.pre = []string{preid}
	} else {
		p.inc(level, preid)
	}

	next := p.String()
	if _, err := ParseVersion(next); err != nil {
		return "", err
	}
	return next, nil
}

// Unpreid strips the prerelease and build metadata from current.
func Unpreid(current string) (string, error) {
	v, err := ParseVersion(current)
	if err != nil {
		return "", err
	}
	p := partsOf(v)
	p.pre = nil
	return p.String(), nil
}

func isLevel(l Level) bool {
	for _, known := range Levels {
		if known == l {
			return true
		}
	}
	return false
}

type parts struct {
	major, minor, patch uint64
	pre                 []string
}

func partsOf(v Version) parts {
	return parts{
		major: v.v.Major(),
		minor: v.v.Minor(),
		patch: v.v.Patch(),
		pre:   v.Prerelease(),
	}
}

func (p parts) String() string {
	base := fmt.Sprintf("%d.%d.%d", p.major, p.minor, p.patch)
	if len(p.pre) == 0 {
		return base
	}
	return base + "-" + strings.Join(p.pre, ".")
}

func (p *parts) inc(level Level, preid string) {
	switch level {
	case LevelPremajor:
		p.pre = nil
		p.patch = 0
		p.minor = 0
		p.major++
		p.inc(levelPre, preid)
	case LevelPreminor:
		p.pre = nil
		p.patch = 0
		p.minor++
		p.inc(levelPre, preid)
	case LevelPrepatch:
		p.pre = nil
		p.inc(LevelPatch, preid)
		p.inc(levelPre, preid)
	case LevelPrerelease:
		if len(p.pre) == 0 {
			p.inc(LevelPatch, preid)
		}
		p.inc(levelPre, preid)

	// 1.0.0-5 goes to 1.0.0, 1.1.0 goes to 2.0.0.
	case LevelMajor:
		if p.minor != 0 || p.patch != 0 || len(p.pre) == 0 {
			p.major++
		}
		p.minor = 0
		p.patch = 0
		p.pre = nil
	case LevelMinor:
		if p.patch != 0 || len(p.pre) == 0 {
			p.minor++
		}
		p.patch = 0
		p.pre = nil
	case LevelPatch:
		if len(p.pre) == 0 {
			p.patch++
		}
		p.pre = nil

	case levelPre:
		p.bumpPrerelease()
		if preid == "" {
			return
		}
		// beta.1 -> beta.2, but beta.foo, beta or alpha.3 -> beta.0
		if p.pre[0] != preid || len(p.pre) < 2 || !isNumeric(p.pre[1]) {
			p.pre = []string{preid, "0"}
		}
	}
}

func (p *parts) bumpPrerelease() {
	if len(p.pre) == 0 {
		p.pre = []string{"0"}
		return
	}
	for i := len(p.pre) - 1; i >= 0; i-- {
		if !isNumeric(p.pre[i]) {
			continue
		}
		n, err := strconv.ParseUint(p.pre[i], 10, 64)
		if err != nil {
			continue
		}
		p.pre[i] = strconv.FormatUint(n+1, 10)
		return
	}
	p.pre = append(p.pre, "0")
}

func isNumeric(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func hasAlphaIdentifier(pre []string) bool {
	for _, id := range pre {
		if !isNumeric(id) {
			return true
		}
	}
	return false
}
