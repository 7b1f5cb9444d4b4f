package convert

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.followtheprocess.codes/pmx/internal/tree"
)

// File extensions of the two formats.
const (
	CollectionExt = ".json"
	TestPlanExt   = ".jmx"
)

// Direction is the direction of a conversion.
type Direction int

// Supported directions.
const (
	Unknown      Direction = iota
	ToTestPlan             // Postman collection to JMeter test plan
	ToCollection           // JMeter test plan to Postman collection
)

// String implements [fmt.Stringer] for [Direction].
func (d Direction) String() string {
	switch d {
	case ToTestPlan:
		return "collection -> testplan"
	case ToCollection:
		return "testplan -> collection"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// SourceExt returns the file extension of the input format.
func (d Direction) SourceExt() string {
	switch d {
	case ToTestPlan:
		return CollectionExt
	case ToCollection:
		return TestPlanExt
	default:
		return ""
	}
}

// TargetExt returns the file extension of the output format.
func (d Direction) TargetExt() string {
	switch d {
	case ToTestPlan:
		return TestPlanExt
	case ToCollection:
		return CollectionExt
	default:
		return ""
	}
}

// ParseDirection parses a direction from its name.
//
// The numbers match the menu entries of the interactive prompt.
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "1", "jmx", "jmeter", "testplan", "test-plan", "postman-to-jmx":
		return ToTestPlan, nil
	case "2", "json", "postman", "collection", "jmx-to-postman":
		return ToCollection, nil
	default:
		return Unknown, &tree.UnsupportedFeatureError{Feature: fmt.Sprintf("conversion %q", name)}
	}
}

// Detect returns the direction implied by the extension of path.
func Detect(path string) (Direction, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case CollectionExt:
		return ToTestPlan, nil
	case TestPlanExt:
		return ToCollection, nil
	default:
		return Unknown, &tree.UnsupportedFeatureError{Feature: fmt.Sprintf("conversion of %q files", filepath.Ext(path))}
	}
}
