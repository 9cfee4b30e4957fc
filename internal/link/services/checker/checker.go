// Package checker is the entry point adapters call: it trims typed input, runs QR
// images through the decoder collaborators and composes the presentation
// messages around the analyzer's verdicts.
package checker

import (
	"context"
	"errors"
	"strings"

	"github.com/haukened/linkcheck/internal/link/common/log"
	"github.com/haukened/linkcheck/internal/link/domain"
	"github.com/haukened/linkcheck/internal/link/services/analyzer"
)

// ErrNoCode is returned by a QRDecoder when the image holds no readable QR code.
var ErrNoCode = errors.New("no QR code found")

// ImageLoader turns encoded image bytes (PNG, JPEG, GIF) into pixels.
type ImageLoader interface {
	Load(data []byte) (domain.Pixels, error)
}

// QRDecoder extracts the text payload of a QR code.
type QRDecoder interface {
	Decode(px domain.Pixels) (string, error)
}

// URLAnalyzer is the analysis engine as seen by the checker.
type URLAnalyzer interface {
	Analyze(rawURL string) domain.Verdict
	Rules() domain.RuleSet
}

// Warning titles and messages produced by the checker itself.
const (
	TitleMissingURL   = "Missing URL"
	MessageMissingURL = "Please enter a URL to check"

	TitleError              = "Error"
	MessageScanUnavailable  = "QR scanning functionality unavailable"
	MessageImageLoadFailure = "Failed to load image"

	TitleScanFailed   = "Scanning Failed"
	MessageScanFailed = "Could not detect a valid QR code in the image."

	TitleScanError   = "Scanning Error"
	MessageScanError = "An error occurred while processing the QR code."

	TitleQRContent = "QR Code Content"
)

// Checker implements the check and scan use cases.
type Checker struct {
	analyzer URLAnalyzer
	images   ImageLoader
	qr       QRDecoder
	logger   log.Logger
}

// Options configures a Checker. Images and QR may be nil, in which case Scan
// reports scanning as unavailable.
type Options struct {
	Analyzer URLAnalyzer
	Images   ImageLoader
	QR       QRDecoder
	Logger   log.Logger
}

func New(opts Options) *Checker {
	c := &Checker{
		analyzer: opts.Analyzer,
		images:   opts.Images,
		qr:       opts.QR,
		logger:   opts.Logger,
	}
	if c.logger == nil {
		c.logger = log.NewNoopLogger()
	}
	return c
}

// Rules exposes the analyzer's rule set for health reporting.
func (c *Checker) Rules() domain.RuleSet { return c.analyzer.Rules() }

// Check analyzes a typed URL. Surrounding whitespace is trimmed first; blank
// input gets a warning instead of an analysis.
func (c *Checker) Check(ctx context.Context, raw string) domain.Verdict {
	url := strings.TrimSpace(raw)
	if url == "" {
		return domain.WarningVerdict(TitleMissingURL, MessageMissingURL)
	}
	v := c.analyzer.Analyze(url)
	c.logger.Info(map[string]any{"url": url, "status": v.Status.String()}, "URL checked")
	return v
}

// Scan decodes a QR code from an encoded image and analyzes its content. Decoder
// problems become warning verdicts; only decoded text reaches the analyzer.
func (c *Checker) Scan(ctx context.Context, image []byte) domain.Verdict {
	if c.images == nil || c.qr == nil {
		return domain.WarningVerdict(TitleError, MessageScanUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return domain.WarningVerdict(TitleScanError, MessageScanError)
	}

	px, err := c.images.Load(image)
	if err != nil {
		c.logger.Warn(map[string]any{"error": err.Error(), "bytes": len(image)}, "QR image load failed")
		return domain.WarningVerdict(TitleError, MessageImageLoadFailure)
	}

	text, err := c.qr.Decode(px)
	// payloads often end in a newline or CRLF
	text = strings.TrimSpace(text)
	switch {
	case errors.Is(err, ErrNoCode):
		return domain.WarningVerdict(TitleScanFailed, MessageScanFailed)
	case err != nil:
		c.logger.Error(map[string]any{"error": err.Error()}, "QR decode failed")
		return domain.WarningVerdict(TitleScanError, MessageScanError)
	case text == "":
		return domain.WarningVerdict(TitleScanFailed, MessageScanFailed)
	}

	if !analyzer.IsValidURL(text) {
		c.logger.Info(map[string]any{"length": len(text)}, "QR code holds text")
		return domain.WarningVerdict(TitleQRContent, "QR Code contains text: "+text)
	}

	v := c.analyzer.Analyze(text)
	c.logger.Info(map[string]any{"url": text, "status": v.Status.String()}, "QR URL checked")
	return v.WithMessage("QR Code contains URL: " + text + "\n" + v.Message)
}
