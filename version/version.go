/*package version tracks the semantic version of the modis source code.*/
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// SourceVersion is the version string representing the semantic version number
// of the source code.
const SourceVersion = "0.3.0"

// Parse parses a semantic version number string and returns an error if
// the string is invalid.
func Parse(s string) (major, minor, patch int, err error) {
	toks := strings.Split(strings.TrimSpace(s), ".")
	errMsg := fmt.Errorf("The version string '%s' does not take the form " +
		"of three period-separated non-negative numbers.", s)

	if len(toks) != 3 {
		return -1, -1, -1, errMsg
	}

	nums := make([]int, 3)
	for i := range toks {
		nums[i], err = strconv.Atoi(toks[i])
		if err != nil || nums[i] < 0 {
			return -1, -1, -1, errMsg
		}
	}

	return nums[0], nums[1], nums[2], nil
}

// Later returns true if s1 represents a later version of the source than
// s2. An error is returned if either is invalid.
func Later(s1, s2 string) (bool, error) {
	major1, minor1, patch1, err := Parse(s1)
	if err != nil {
		return false, err
	}
	major2, minor2, patch2, err := Parse(s2)
	if err != nil {
		return false, err
	}

	if major1 == major2 {
		if minor1 == minor2 {
			return patch1 > patch2, nil
		} else {
			return minor1 > minor2, nil
		}
	} else {
		return major1 > major2, nil
	}
}

// Compatible returns an error if a config file written for version s can't be
// run by this source. Only the patch number is allowed to differ.
func Compatible(s string) error {
	major, minor, _, err := Parse(s)
	if err != nil { return err }
	smajor, sminor, _, _ := Parse(SourceVersion)
	if major != smajor || minor != sminor {
		return fmt.Errorf("The 'Version' variable is set to %s, but the " +
			"version of the source is %s.", s, SourceVersion)
	}
	return nil
}
