package main

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/linkcheck/internal/link/domain"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeQR(t *testing.T, dir, name, text string) string {
	t.Helper()
	matrix, err := qrcode.NewQRCodeWriter().Encode(text, gozxing.BarcodeFormat_QR_CODE, 256, 256, nil)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, matrix))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func decodeResults(t *testing.T, out string) []map[string]any {
	t.Helper()
	var results []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var r map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &r))
		results = append(results, r)
	}
	return results
}

func TestCheck_Text(t *testing.T) {
	code, out, _ := runCLI(t, "check", "https://example.com")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "✔ "+domain.TitleSafe+"\n  "+domain.MessageSafe+"\n", out)
}

func TestCheck_TextMultipleInputs(t *testing.T) {
	code, out, _ := runCLI(t, "check", "https://example.com", "not a url")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "https://example.com\n✔ ")
	assert.Contains(t, out, "not a url\n⚠ "+domain.TitleInvalidURL)
}

func TestCheck_JSON(t *testing.T) {
	code, out, _ := runCLI(t, "check", "--json",
		"https://evil-site.com/path",
		"http://login-secure.example.com",
		"https://random-shop.xyz",
		"https://example.com")
	assert.Equal(t, exitOK, code)

	results := decodeResults(t, out)
	require.Len(t, results, 4)
	assert.Equal(t, "https://evil-site.com/path", results[0]["input"])
	assert.Equal(t, "unsafe", results[0]["status"])
	assert.Equal(t, "Domain is on our blacklist of known malicious sites", results[0]["reason"])
	assert.Equal(t, "unsafe", results[1]["status"])
	assert.Equal(t, "unsafe", results[2]["status"])
	assert.Equal(t, "Domain uses a potentially suspicious TLD: xyz", results[2]["reason"])
	assert.Equal(t, "safe", results[3]["status"])
	assert.NotContains(t, results[3], "reason")
}

func TestCheck_Strict(t *testing.T) {
	code, _, _ := runCLI(t, "check", "--strict", "https://example.com")
	assert.Equal(t, exitOK, code)

	code, out, stderr := runCLI(t, "check", "--strict", "https://example.com", "https://EVIL-SITE.com")
	assert.Equal(t, exitUnsafe, code)
	assert.Contains(t, out, "✖ "+domain.TitleUnsafe)
	assert.Empty(t, stderr)
}

func TestCheck_RulesAndLists(t *testing.T) {
	dir := t.TempDir()
	rulesFile := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(rulesFile, []byte("keywords: [claim-reward]\n"), 0o600))
	feed := filepath.Join(dir, "feed.txt")
	require.NoError(t, os.WriteFile(feed, []byte("# local feed\nbad.example\n"), 0o600))

	code, out, _ := runCLI(t, "check", "--json", "--rules", rulesFile, "--list", feed,
		"https://shop.example/claim-reward", "https://bad.example/")
	assert.Equal(t, exitOK, code)

	results := decodeResults(t, out)
	require.Len(t, results, 2)
	assert.Equal(t, `Suspicious keyword detected: "claim-reward"`, results[0]["reason"])
	assert.Equal(t, "unsafe", results[1]["status"])
}

func TestCheck_Errors(t *testing.T) {
	code, _, stderr := runCLI(t, "check")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "requires at least 1 arg")

	code, _, stderr = runCLI(t, "check", "--rules", filepath.Join(t.TempDir(), "missing.yaml"), "https://example.com")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "open rules file")
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	urlImg := writeQR(t, dir, "url.png", "https://phishing-attempt.org/login")
	textImg := writeQR(t, dir, "text.png", "hello there")

	code, out, _ := runCLI(t, "scan", "--json", "--strict", urlImg, textImg)
	assert.Equal(t, exitUnsafe, code)

	results := decodeResults(t, out)
	require.Len(t, results, 2)
	assert.Equal(t, urlImg, results[0]["input"])
	assert.Equal(t, "unsafe", results[0]["status"])
	assert.True(t, strings.HasPrefix(results[0]["message"].(string), "QR Code contains URL: https://phishing-attempt.org/login\n"))
	assert.Equal(t, "warning", results[1]["status"])
	assert.Equal(t, "QR Code contains text: hello there", results[1]["message"])
}

func TestScan_MissingFile(t *testing.T) {
	code, _, stderr := runCLI(t, "scan", filepath.Join(t.TempDir(), "nope.png"))
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "read image")
}
