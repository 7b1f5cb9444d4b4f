package format

import (
	_ "embed"
	"io"
	"strings"
	"text/template"

	"go.followtheprocess.codes/pmx/internal/tree"
)

//go:embed templates/curl.txt.tmpl
var curlTempl string

// minifier is a [strings.Replacer] that removes all whitespace from a string.
//
//nolint:gochecknoglobals // Also has to be here
var minifier = strings.NewReplacer(
	"\t", "",
	"\n", "",
	"\v", "",
	"\f", "",
	"\r", "",
	" ", "",
)

// curlFunctions are custom template functions available in the curlTemplate.
//
//nolint:gochecknoglobals // This has to be here
var curlFunctions = template.FuncMap{
	"minify": minifier.Replace,
	"quote":  quote,
	"target": target,
}

// curlTemplate is the parsed curl command line text/template.
//
//nolint:gochecknoglobals // Having the template as a global means it's parsed only once
var curlTemplate = template.Must(template.New("curl").Funcs(curlFunctions).Parse(curlTempl))

// CurlExporter is an [Exporter] that transforms a tree into a curl shell script,
// one command per request.
//
// Placeholders are left as they are, ${name} is expanded by the shell so the
// variables can be exported before running the script.
type CurlExporter struct{}

// Export implements [Exporter] for [CurlExporter] and exports the given
// tree as one or more curl snippets.
func (c CurlExporter) Export(w io.Writer, root *tree.Group) error {
	return curlTemplate.Execute(w, NewDump(root))
}

// quote wraps s in single quotes for a POSIX shell.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// target returns the URL to request, adding the query parameters if the
// URL does not already carry them.
//
// A request parsed from a test plan keeps its query in arguments rather than on the path.
func target(request RequestEntry) string {
	if strings.Contains(request.URL, "?") || request.Query.None() {
		return request.URL
	}

	return request.URL + "?" + request.Query.Encode()
}
