package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadProfile(t *testing.T) {
	path := writeFile(t, "req.yaml", `
url: https://example.com/api
method: POST
body: hello
headers:
  Content-Type: text/plain
timeout: 5s
per_wait: true
retries: 2
pins:
  - "ab:cd"
`)

	p, err := LoadProfile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/api", p.URL)
	assert.True(t, p.IsPost())
	assert.True(t, p.IsSecure())
	assert.Equal(t, "hello", p.Body)
	assert.Equal(t, map[string]string{"Content-Type": "text/plain"}, p.Headers)
	assert.Equal(t, 5*time.Second, p.Timeout)
	assert.True(t, p.PerWait)
	assert.Equal(t, 2, p.Retries)
	assert.Equal(t, []string{"ab:cd"}, p.Pins)
	assert.Equal(t, DefaultMaxBody, p.MaxBody, "missing fields keep defaults")
}

func TestLoadProfileErrors(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeFile(t, "bad.yaml", "timeout: [1, 2\n")
	_, err = LoadProfile(path)
	assert.Error(t, err)
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr bool
	}{
		{"get", func(p *Profile) { p.URL = "http://h/" }, false},
		{"lowercase post", func(p *Profile) { p.URL = "http://h/"; p.Method = "post" }, false},
		{"missing url", func(p *Profile) {}, true},
		{"put", func(p *Profile) { p.URL = "http://h/"; p.Method = "PUT" }, true},
		{"negative retries", func(p *Profile) { p.URL = "http://h/"; p.Retries = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestProfileTLSConfig(t *testing.T) {
	p := DefaultProfile()
	p.Insecure = true
	p.ServerName = "device.local"
	p.Pins = []string{"00000000000000000000000000000000000000000000000000000000000000ff"}

	cfg, err := p.TLSConfig()
	require.NoError(t, err)
	assert.True(t, cfg.InsecureSkipVerify)
	assert.Equal(t, "device.local", cfg.ServerName)
	require.Len(t, cfg.PinnedSHA256, 1)
	assert.Equal(t, byte(0xff), cfg.PinnedSHA256[0][31])

	p.Pins = []string{"nothex"}
	_, err = p.TLSConfig()
	assert.Error(t, err)

	p.Pins = nil
	p.CAFile = writeFile(t, "ca.pem", "not a certificate")
	_, err = p.TLSConfig()
	assert.Error(t, err)
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		in        string
		wantName  string
		wantValue string
		wantErr   bool
	}{
		{"Accept: text/html", "Accept", "text/html", false},
		{"  X-Trace :  abc ", "X-Trace", "abc", false},
		{"Empty:", "Empty", "", false},
		{"Time: 12:30", "Time", "12:30", false},
		{"NoColon", "", "", true},
		{": value", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, value, err := parseHeader(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseHeader(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if name != tt.wantName || value != tt.wantValue {
				t.Errorf("parseHeader(%q) = %q, %q; want %q, %q", tt.in, name, value, tt.wantName, tt.wantValue)
			}
		})
	}
}

func TestBuildProfileFlagsOverrideFile(t *testing.T) {
	path := writeFile(t, "req.yaml", `
url: http://from-file/
timeout: 5s
retries: 4
headers:
  Accept: text/plain
`)

	var f cliFlags
	fs := newFlagSet(&f)
	err := fs.Parse([]string{
		"-config", path,
		"-post",
		"-H", "Accept: application/json",
		"-H", "X-Id: 7",
		"-retries", "1",
		"http://from-args/",
	})
	require.NoError(t, err)

	p, err := buildProfile(fs, &f)
	require.NoError(t, err)

	assert.Equal(t, "http://from-args/", p.URL)
	assert.Equal(t, "POST", p.Method)
	assert.Equal(t, 5*time.Second, p.Timeout, "unset flag keeps the file value")
	assert.Equal(t, 1, p.Retries)
	assert.Equal(t, map[string]string{"Accept": "application/json", "X-Id": "7"}, p.Headers)
}

func TestBuildProfileDefaults(t *testing.T) {
	var f cliFlags
	fs := newFlagSet(&f)
	require.NoError(t, fs.Parse([]string{"-url", "http://h/"}))

	p, err := buildProfile(fs, &f)
	require.NoError(t, err)
	assert.Equal(t, "http://h/", p.URL)
	assert.Equal(t, "GET", p.Method)
	assert.Equal(t, 30*time.Second, p.Timeout)
	assert.Empty(t, p.Headers)
}
