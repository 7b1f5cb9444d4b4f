package pmx_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"go.followtheprocess.codes/pmx/internal/pmx"
	"go.followtheprocess.codes/test"
	"go.uber.org/goleak"
)

func TestInspectCurl(t *testing.T) {
	defer goleak.VerifyNone(t)

	want := `# Sample

# Folder/Get Pet
curl --request GET 'https://x_com/v2/pet?id=${petId}'

# Folder/Add Pet
curl --request POST 'https://x_com/v2/pet' \
  --data '{"name":"{{petName}}","tags":["new"]}'
`

	app, stdout, stderr := newApp(t)

	err := app.Inspect(t.Context(), filepath.Join("testdata", "convert", "pets.json"), pmx.InspectOptions{Format: "curl"})
	test.Ok(t, err)

	test.Diff(t, stdout.String(), want)
	test.Diff(t, stderr.String(), "")
}

func TestInspectJSON(t *testing.T) {
	app, stdout, _ := newApp(t)

	err := app.Inspect(t.Context(), filepath.Join("testdata", "convert", "users.jmx"), pmx.InspectOptions{Format: "json"})
	test.Ok(t, err)

	var dump struct {
		Name     string `json:"name"`
		Requests []struct {
			Name string `json:"name"`
			Path string `json:"path"`
		} `json:"requests"`
	}

	test.Ok(t, json.Unmarshal(stdout.Bytes(), &dump))
	test.Equal(t, dump.Name, "Sample Plan")

	// Inspect shows the parsed tree, duplicates are only dropped when rendering
	test.Equal(t, len(dump.Requests), 2)
	test.Equal(t, dump.Requests[0].Path, "Users")
}

func TestInspectErrors(t *testing.T) {
	tests := []struct {
		name    string             // Name of the test case
		file    string             // File to inspect
		options pmx.InspectOptions // Options to pass
	}{
		{
			name:    "bad format",
			file:    filepath.Join("testdata", "convert", "pets.json"),
			options: pmx.InspectOptions{Format: "xml"},
		},
		{
			name:    "empty format",
			file:    filepath.Join("testdata", "convert", "pets.json"),
			options: pmx.InspectOptions{},
		},
		{
			name:    "unknown extension",
			file:    filepath.Join("testdata", "convert", "pets.yaml"),
			options: pmx.InspectOptions{Format: "json"},
		},
		{
			name:    "missing",
			file:    filepath.Join("testdata", "convert", "missing.json"),
			options: pmx.InspectOptions{Format: "json"},
		},
		{
			name:    "invalid",
			file:    filepath.Join("testdata", "check", "invalid", "no-name.json"),
			options: pmx.InspectOptions{Format: "yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, stdout, _ := newApp(t)

			err := app.Inspect(t.Context(), tt.file, tt.options)
			test.Err(t, err)
			test.Diff(t, stdout.String(), "")
		})
	}
}
