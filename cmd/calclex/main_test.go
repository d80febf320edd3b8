package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"calclex/internal/diagfmt"
)

type cliResult struct {
	code           int
	stdout, stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// emptyConfig keeps tests independent of any calclex.toml above the package dir.
func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calclex.toml")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTokenizeExprJSON(t *testing.T) {
	res := runCLI(t, "", "--config", emptyConfig(t), "tokenize", "--format", "json", "-e", "(1+2)")
	if res.code != 0 {
		t.Fatalf("exit %d, stderr: %s", res.code, res.stderr)
	}
	var tokens []diagfmt.TokenOutput
	if err := json.Unmarshal([]byte(res.stdout), &tokens); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, res.stdout)
	}
	kinds := make([]string, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	if got := strings.Join(kinds, " "); got != "LParen Number Plus Number RParen" {
		t.Errorf("kinds = %q", got)
	}
}

func TestTokenizeStdinPretty(t *testing.T) {
	res := runCLI(t, "7 * 6\n", "--config", emptyConfig(t), "tokenize")
	if res.code != 0 {
		t.Fatalf("exit %d, stderr: %s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "Number(7)") || !strings.Contains(res.stdout, "Asterisk") {
		t.Errorf("unexpected output:\n%s", res.stdout)
	}
}

func TestTokenizeFileMsgpack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.calc")
	if err := os.WriteFile(path, []byte("10 / 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	res := runCLI(t, "", "--config", emptyConfig(t), "tokenize", "--format", "msgpack", path)
	if res.code != 0 {
		t.Fatalf("exit %d, stderr: %s", res.code, res.stderr)
	}
	var tokens []diagfmt.TokenOutput
	if err := msgpack.Unmarshal([]byte(res.stdout), &tokens); err != nil {
		t.Fatalf("invalid msgpack: %v", err)
	}
	if len(tokens) != 3 || *tokens[0].Value != 10 {
		t.Errorf("unexpected tokens %+v", tokens)
	}
}

func TestTokenizeInvalidCharExitsWithError(t *testing.T) {
	res := runCLI(t, "", "--config", emptyConfig(t), "--color", "off", "tokenize", "-e", "1 & 2")
	if res.code != 1 {
		t.Fatalf("exit %d, want 1", res.code)
	}
	if res.stdout != "" {
		t.Errorf("no tokens may be printed on failure, got %q", res.stdout)
	}
	if !strings.Contains(res.stderr, "<expr>:1:3: ERROR LEX1001: invalid character '&'") {
		t.Errorf("unexpected diagnostics:\n%s", res.stderr)
	}
	if strings.Contains(res.stderr, "calclex:") {
		t.Errorf("lex failures must not be reported twice:\n%s", res.stderr)
	}
}

func TestTokenizeShortDiagnostics(t *testing.T) {
	res := runCLI(t, "", "--config", emptyConfig(t), "tokenize", "--short", "-e", "99999999999999999999")
	if res.code != 1 {
		t.Fatalf("exit %d, want 1", res.code)
	}
	want := "error LEX1004 <expr>:1:1 integer literal out of range for uint64\n" +
		"note LEX1004 <expr>:1:1 maximum is 18446744073709551615\n"
	if res.stderr != want {
		t.Errorf("stderr = %q, want %q", res.stderr, want)
	}
}

func TestTokenizeJSONDiagnostics(t *testing.T) {
	res := runCLI(t, "", "--config", emptyConfig(t), "tokenize", "--format", "json", "--color", "off", "-e", "1 & 2")
	if res.code != 1 {
		t.Fatalf("exit %d, want 1", res.code)
	}
	if res.stdout != "" {
		t.Errorf("no tokens expected on failure, got %q", res.stdout)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(res.stderr), &out); err != nil {
		t.Fatalf("stderr is not JSON: %v\n%s", err, res.stderr)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("unexpected diagnostics %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Code != "LEX1001" || d.Severity != "ERROR" || d.Message != "invalid character '&'" {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if d.Location.File != "<expr>" || d.Location.StartByte != 2 || d.Location.StartCol != 3 {
		t.Errorf("unexpected location %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "expected a digit, + - * / ( ) or whitespace" {
		t.Errorf("unexpected notes %+v", d.Notes)
	}
}

func TestTokenizeArgumentConflicts(t *testing.T) {
	cfg := emptyConfig(t)
	tests := [][]string{
		{"--config", cfg, "tokenize", "-e", "1", "file.calc"},
		{"--config", cfg, "tokenize", "--dir", ".", "-e", "1"},
		{"--config", cfg, "tokenize", "--format", "xml", "-e", "1"},
		{"--config", cfg, "tokenize", "--dir", ".", "--ui", "sometimes"},
		{"--config", cfg, "--log-level", "chatty", "tokenize", "-e", "1"},
	}
	for _, args := range tests {
		res := runCLI(t, "", args...)
		if res.code != 1 || !strings.Contains(res.stderr, "calclex:") {
			t.Errorf("%v: exit %d, stderr %q", args, res.code, res.stderr)
		}
	}
}

func TestTokenizeDir(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"a.calc":   "1 + 1",
		"b.calc":   "2 ? 2",
		"skip.txt": "?",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	res := runCLI(t, "", "--config", emptyConfig(t), "tokenize", "--dir", dir, "--ui", "off", "--format", "json", "--short", "--jobs", "2")
	if res.code != 1 {
		t.Fatalf("exit %d, want 1 because b.calc fails", res.code)
	}
	if !strings.Contains(res.stderr, "error LEX1001 b.calc:1:3 invalid character '?'") {
		t.Errorf("unexpected diagnostics:\n%s", res.stderr)
	}
	var files []diagfmt.FileTokensOutput
	if err := json.Unmarshal([]byte(res.stdout), &files); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, res.stdout)
	}
	if len(files) != 1 || files[0].File != "a.calc" || len(files[0].Tokens) != 3 {
		t.Errorf("unexpected files %+v", files)
	}
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "calclex.toml")
	if err := os.WriteFile(cfgPath, []byte("[tokenize]\nformat = \"json\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	res := runCLI(t, "", "--config", cfgPath, "tokenize", "-e", "3")
	if res.code != 0 || !strings.HasPrefix(strings.TrimSpace(res.stdout), "[") {
		t.Fatalf("config format not applied: exit %d, stdout %q", res.code, res.stdout)
	}

	res = runCLI(t, "", "--config", cfgPath, "tokenize", "--format", "pretty", "-e", "3")
	if res.code != 0 || !strings.Contains(res.stdout, "Number(3)") {
		t.Fatalf("flag must override config: exit %d, stdout %q", res.code, res.stdout)
	}
}

func TestConfigUnknownKey(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "calclex.toml")
	if err := os.WriteFile(cfgPath, []byte("[tokenize]\nfromat = \"json\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	res := runCLI(t, "", "--config", cfgPath, "tokenize", "-e", "1")
	if res.code != 1 || !strings.Contains(res.stderr, "unknown keys: tokenize.fromat") {
		t.Errorf("exit %d, stderr %q", res.code, res.stderr)
	}
}

func TestTimingsAndLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "calclex.log")
	res := runCLI(t, "", "--config", emptyConfig(t), "--timings", "--log-level", "debug", "--log-file", logPath, "tokenize", "-e", "1+2")
	if res.code != 0 {
		t.Fatalf("exit %d, stderr: %s", res.code, res.stderr)
	}
	if !strings.Contains(res.stderr, "lex ") || !strings.Contains(res.stderr, "(3 tokens)") {
		t.Errorf("timings missing:\n%s", res.stderr)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"lexed"`) {
		t.Errorf("log file missing lexer record:\n%s", data)
	}
}

func TestQuietSuppressesTokens(t *testing.T) {
	res := runCLI(t, "", "--config", emptyConfig(t), "--quiet", "tokenize", "-e", "1")
	if res.code != 0 || res.stdout != "" {
		t.Errorf("exit %d, stdout %q", res.code, res.stdout)
	}
}

func TestVersionJSON(t *testing.T) {
	res := runCLI(t, "", "--config", emptyConfig(t), "version", "--format", "json", "--full")
	if res.code != 0 {
		t.Fatalf("exit %d, stderr: %s", res.code, res.stderr)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(res.stdout), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Tool != "calclex" || payload.GitCommit == "" || payload.BuildDate == "" {
		t.Errorf("unexpected payload %+v", payload)
	}
}

func TestVersionPretty(t *testing.T) {
	res := runCLI(t, "", "--config", emptyConfig(t), "--color", "off", "version")
	if res.code != 0 || !strings.HasPrefix(res.stdout, "calclex ") || strings.Contains(res.stdout, "\x1b[") {
		t.Errorf("exit %d, stdout %q", res.code, res.stdout)
	}
}

func TestVersionColorFromConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "calclex.toml")
	if err := os.WriteFile(cfgPath, []byte("[diagnostics]\ncolor = \"on\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	res := runCLI(t, "", "--config", cfgPath, "version")
	if res.code != 0 || !strings.Contains(res.stdout, "\x1b[") {
		t.Errorf("config color must apply to version: exit %d, stdout %q", res.code, res.stdout)
	}

	res = runCLI(t, "", "--config", cfgPath, "--color", "off", "version")
	if res.code != 0 || strings.Contains(res.stdout, "\x1b[") {
		t.Errorf("flag must override config color: exit %d, stdout %q", res.code, res.stdout)
	}
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")
	res := runCLI(t, "", "--config", emptyConfig(t), "--cpu-profile", cpu, "--mem-profile", mem, "tokenize", "-e", "1")
	if res.code != 0 {
		t.Fatalf("exit %d, stderr: %s", res.code, res.stderr)
	}
	for _, path := range []string{cpu, mem} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("profile %s not written: %v", path, err)
		}
	}
}
