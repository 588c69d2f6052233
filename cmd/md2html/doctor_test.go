package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestCheckAssets - Engines and embedded styles
// ---------------------------------------------------------------------------

func TestCheckAssets(t *testing.T) {
	t.Parallel()

	var r doctorResult
	checkAssets(&r)

	if len(r.Errors) != 0 {
		t.Fatalf("errors = %v", r.Errors)
	}
	if strings.Join(r.Assets.Engines, ",") != "classic,commonmark,blackfriday" {
		t.Errorf("engines = %v", r.Assets.Engines)
	}
	if len(r.Assets.Styles) == 0 {
		t.Error("no embedded styles loaded")
	}
	if len(r.Assets.Highlights) == 0 {
		t.Error("no highlight styles listed")
	}
}

func TestCheckSystem(t *testing.T) {
	t.Parallel()

	var r doctorResult
	checkSystem(&r)
	if !r.System.TempWritable {
		t.Errorf("TempWritable = false, errors = %v", r.Errors)
	}
}

// ---------------------------------------------------------------------------
// TestPrintDoctorResult - Human-readable report
// ---------------------------------------------------------------------------

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result doctorResult
		want   []string
	}{
		{
			name: "ready",
			result: doctorResult{
				Status: statusReady,
				Chrome: chromeInfo{Found: true, Path: "/usr/bin/chromium", Version: "Chromium 120", Sandbox: true},
				Env:    envInfo{OS: "linux", Arch: "amd64"},
				System: systemInfo{TempWritable: true},
				Assets: assetInfo{Engines: []string{"classic"}, Styles: []string{"default"}, Highlights: []string{"monokai"}},
			},
			want: []string{
				"md2html doctor",
				"[OK] Engines: classic",
				"Highlight styles (commonmark): monokai",
				"[OK] Found at /usr/bin/chromium",
				"[OK] Version: Chromium 120",
				"Sandbox: enabled",
				"[OK] Platform: linux/amd64",
				"Temp directory: writable",
				"Status: Ready to convert",
			},
		},
		{
			name: "warnings without chrome",
			result: doctorResult{
				Status:   statusWarnings,
				Env:      envInfo{OS: "linux", Arch: "arm64", Container: true, ContainerHint: "/.dockerenv", CI: true},
				System:   systemInfo{TempWritable: true},
				Warnings: []string{"Chrome/Chromium not found"},
			},
			want: []string{
				"[WARN] Not found",
				"Container: detected (/.dockerenv)",
				"CI: detected",
				"[WARN] Chrome/Chromium not found",
				"Status: Ready with warnings",
			},
		},
		{
			name: "errors",
			result: doctorResult{
				Status: statusErrors,
				Errors: []string{"Temp directory not writable: /tmp"},
			},
			want: []string{
				"[ERROR] Temp directory: not writable",
				"[ERROR] Temp directory not writable: /tmp",
				"Status: Not ready",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printDoctorResult(&buf, &tt.result)
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestDoctorResult_JSON(t *testing.T) {
	t.Parallel()

	r := doctorResult{
		Status: statusWarnings,
		Chrome: chromeInfo{Found: false},
		Env:    envInfo{OS: "linux", Container: true, ContainerHint: "MD2HTML_CONTAINER=1"},
		Assets: assetInfo{Engines: []string{"classic"}},
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if decoded["status"] != statusWarnings {
		t.Errorf("status = %v", decoded["status"])
	}
	env, ok := decoded["environment"].(map[string]any)
	if !ok || env["container_hint"] != "MD2HTML_CONTAINER=1" {
		t.Errorf("environment = %v", decoded["environment"])
	}
	if _, ok := decoded["warnings"]; ok {
		t.Error("empty warnings should be omitted")
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Flag handling
// ---------------------------------------------------------------------------

func TestRunDoctorCmd(t *testing.T) {
	t.Parallel()

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		code := runDoctorCmd([]string{"--json"}, env)

		var r doctorResult
		if err := json.Unmarshal(stdout.Bytes(), &r); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, stdout)
		}
		wantCode := ExitSuccess
		if r.Status == statusErrors {
			wantCode = ExitGeneral
		}
		if code != wantCode {
			t.Errorf("code = %d for status %q, want %d", code, r.Status, wantCode)
		}
		if len(r.Assets.Engines) != 3 {
			t.Errorf("engines = %v", r.Assets.Engines)
		}
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv()
		if code := runDoctorCmd([]string{"--help"}, env); code != ExitSuccess {
			t.Errorf("code = %d, want %d", code, ExitSuccess)
		}
		if !strings.Contains(stdout.String(), "Usage: md2html doctor") {
			t.Errorf("stdout = %q", stdout)
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := testEnv()
		if code := runDoctorCmd([]string{"--bogus"}, env); code != ExitUsage {
			t.Errorf("code = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "unknown flag") {
			t.Errorf("stderr = %q", stderr)
		}
	})
}

// isContainer reads the environment, so it runs serially.
func TestIsContainer_EnvOverride(t *testing.T) {
	t.Setenv("MD2HTML_CONTAINER", "1")

	found, hint := isContainer()
	if !found || hint != "MD2HTML_CONTAINER=1" {
		t.Errorf("isContainer() = %v, %q", found, hint)
	}
}
