// Package placeholder converts template variables between the Postman form {{name}}
// and the JMeter form ${name}.
package placeholder

import "regexp"

//nolint:gochecknoglobals // Compiled once
var (
	postman = regexp.MustCompile(`\{\{([^{}]*)\}\}`)
	jmeter  = regexp.MustCompile(`\$\{([^{}]*)\}`)
)

// Encode rewrites every {{name}} in s to ${name}.
func Encode(s string) string {
	return postman.ReplaceAllString(s, "$${$1}")
}

// Decode rewrites every ${name} in s to {{name}}, it is the inverse of [Encode]
// for strings whose braces all belong to placeholders.
func Decode(s string) string {
	return jmeter.ReplaceAllString(s, "{{$1}}")
}
