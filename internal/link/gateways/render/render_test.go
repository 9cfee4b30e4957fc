package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/linkcheck/internal/link/domain"
)

func TestIcon(t *testing.T) {
	assert.Equal(t, "✔", Icon(domain.StatusSafe))
	assert.Equal(t, "✖", Icon(domain.StatusUnsafe))
	assert.Equal(t, "⚠", Icon(domain.StatusWarning))
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, domain.SafeVerdict()))
	assert.Equal(t, "✔ Safe Link\n  No suspicious patterns or known threats were detected.\n", buf.String())

	buf.Reset()
	v := domain.UnsafeVerdict("Domain uses a potentially suspicious TLD: xyz")
	v = v.WithMessage("QR Code contains URL: https://a.xyz\n" + v.Message)
	require.NoError(t, Text(&buf, v))
	assert.Equal(t, "✖ Unsafe Link\n"+
		"  QR Code contains URL: https://a.xyz\n"+
		"  This URL matches patterns associated with malicious activities.\n"+
		"  reason: Domain uses a potentially suspicious TLD: xyz\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestTextWriteError(t *testing.T) {
	assert.Error(t, Text(failingWriter{}, domain.SafeVerdict()))
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf,
		Result{Input: "https://example.com", Verdict: domain.SafeVerdict()},
		Result{Input: "nope", Verdict: domain.InvalidURLVerdict()},
	))
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"input":"https://example.com","status":"safe","title":"Safe Link","message":"No suspicious patterns or known threats were detected."}`, string(lines[0]))
	assert.JSONEq(t, `{"input":"nope","status":"warning","title":"Invalid URL Format","message":"The URL you entered does not appear to be properly formatted."}`, string(lines[1]))
}
