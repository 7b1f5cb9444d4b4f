package pmx_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.followtheprocess.codes/pmx/internal/pmx"
	"go.followtheprocess.codes/test"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string     // Name of the test case
		content string     // Contents of the config file, no file is written if empty
		want    pmx.Config // Expected config
		wantErr bool       // Whether we want an error
	}{
		{
			name:    "missing",
			content: "",
			want:    pmx.Config{},
			wantErr: false,
		},
		{
			name:    "full",
			content: "host_variable = \"base\"\noutput = \"out\"\nstrict = true\n",
			want:    pmx.Config{HostVariable: "base", Output: "out", Strict: true},
			wantErr: false,
		},
		{
			name:    "partial",
			content: "strict = true\n",
			want:    pmx.Config{Strict: true},
			wantErr: false,
		},
		{
			name:    "unknown key",
			content: "host = \"base\"\n",
			want:    pmx.Config{},
			wantErr: true,
		},
		{
			name:    "malformed",
			content: "host_variable = \n",
			want:    pmx.Config{},
			wantErr: true,
		},
		{
			name:    "wrong type",
			content: "strict = \"yes\"\n",
			want:    pmx.Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), pmx.ConfigFile)

			if tt.content != "" {
				test.Ok(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}

			got, err := pmx.LoadConfig(path)
			test.WantErr(t, err, tt.wantErr)
			test.Equal(t, got, tt.want)
		})
	}
}

func TestLoadConfigNoPath(t *testing.T) {
	got, err := pmx.LoadConfig("")
	test.Ok(t, err)
	test.Equal(t, got, pmx.Config{})
}
