package util

import (
	"fmt"
	"strconv"
	"strings"
)

type Semver struct {
	Major      int
	Minor      int
	Patch      int
	Beta       bool
	Alpha      bool
	Prerelease int
}

func Parse(semver string) (Semver, error) {
	s := Semver{}
	split := strings.SplitN(strings.TrimPrefix(semver, "v"), ".", 3)
	if len(split) != 3 {
		return Semver{}, fmt.Errorf("invalid version: %q", semver)
	}

	major, err := strconv.Atoi(split[0])
	if err != nil {
		return Semver{}, err
	}
	s.Major = major

	minor, err := strconv.Atoi(split[1])
	if err != nil {
		return Semver{}, err
	}
	s.Minor = minor

	patch := strings.SplitN(split[2], "-", 2)
	patchNum, err := strconv.Atoi(patch[0])
	if err != nil {
		return Semver{}, err
	}
	s.Patch = patchNum

	if len(patch) > 1 {
		kind, num, _ := strings.Cut(patch[1], ".")
		switch kind {
		case "beta":
			s.Beta = true
		case "alpha":
			s.Alpha = true
		default:
			return Semver{}, fmt.Errorf("invalid prerelease type: %s", patch[1])
		}
		if num != "" {
			s.Prerelease, err = strconv.Atoi(num)
			if err != nil {
				return Semver{}, err
			}
		}
	}

	return s, nil
}

func (s Semver) String() string {
	str := strconv.Itoa(s.Major) + "." + strconv.Itoa(s.Minor) + "." + strconv.Itoa(s.Patch)
	if s.Beta {
		str += "-beta." + strconv.Itoa(s.Prerelease)
	} else if s.Alpha {
		str += "-alpha." + strconv.Itoa(s.Prerelease)
	}
	return str
}

// Compare returns -1, 0 or 1. Alpha sorts before beta, and both sort before
// the release they lead up to.
func (s Semver) Compare(o Semver) int {
	for _, d := range []int{
		s.Major - o.Major,
		s.Minor - o.Minor,
		s.Patch - o.Patch,
		s.stage() - o.stage(),
		s.Prerelease - o.Prerelease,
	} {
		if d < 0 {
			return -1
		}
		if d > 0 {
			return 1
		}
	}
	return 0
}

func (s Semver) stage() int {
	switch {
	case s.Alpha:
		return 0
	case s.Beta:
		return 1
	}
	return 2
}

// Satisfies checks s against a constraint: an exact version, or one prefixed
// with ~ (same minor), ^ (same major), >, >=, < or <=.
func (s Semver) Satisfies(cmp string) (bool, error) {
	cmp = strings.TrimSpace(cmp)
	var op string
	for _, prefix := range []string{">=", "<=", "~", "^", ">", "<"} {
		if strings.HasPrefix(cmp, prefix) {
			op = prefix
			cmp = strings.TrimSpace(cmp[len(prefix):])
			break
		}
	}

	c, err := Parse(cmp)
	if err != nil {
		return false, err
	}

	d := s.Compare(c)
	switch op {
	case "~":
		return d >= 0 && s.Major == c.Major && s.Minor == c.Minor, nil
	case "^":
		return d >= 0 && s.Major == c.Major, nil
	case ">":
		return d > 0, nil
	case ">=":
		return d >= 0, nil
	case "<":
		return d < 0, nil
	case "<=":
		return d <= 0, nil
	}
	return d == 0, nil
}
