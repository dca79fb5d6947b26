package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hardhat-ai/hardhat/internal/service"
)

type fakeStreamer struct {
	fragments []string
	err       error
}

func (f *fakeStreamer) StreamCompletion(ctx context.Context, prompt, systemPrompt string, maxTokens int64, emit func(string)) error {
	for _, fr := range f.fragments {
		emit(fr)
	}
	return f.err
}

func (f *fakeStreamer) StreamImageAnalysis(ctx context.Context, imagePaths []string, prompt, systemPrompt string, maxTokens int64, emit func(string)) error {
	return f.StreamCompletion(ctx, prompt, systemPrompt, maxTokens, emit)
}

// sseRecorder adds the CloseNotify method gin's Stream helper requires.
type sseRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newSSERecorder() *sseRecorder {
	return &sseRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool, 1)}
}

func (r *sseRecorder) CloseNotify() <-chan bool { return r.closed }

func testRouter(fs *fakeStreamer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	return SetupRouter(
		service.NewScribeService(fs, logger),
		service.NewQueryService(fs, logger),
		service.NewRiskService(fs, logger),
		service.NewSubmittalService(fs, logger),
		service.NewLookaheadService(fs, logger),
		logger,
		RouterConfig{AllowOrigins: []string{"*"}},
	)
}

func TestHealth(t *testing.T) {
	r := testRouter(&fakeStreamer{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestRoot(t *testing.T) {
	r := testRouter(&fakeStreamer{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hard Hat AI Pack API")
}

func TestCORSPreflight(t *testing.T) {
	r := testRouter(&fakeStreamer{})

	req := httptest.NewRequest(http.MethodOptions, "/api/site-scribe/transform", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestTransform_StreamsSSE(t *testing.T) {
	fs := &fakeStreamer{fragments: []string{"Dear team, ", "the crew returns tomorrow."}}
	r := testRouter(fs)

	body, _ := json.Marshal(map[string]string{
		"text": "crew no-show, back tomorrow",
		"tone": "neutral",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/site-scribe/transform", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := newSSERecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))
	assert.Equal(t, "no", w.Header().Get("X-Accel-Buffering"))

	frames := w.Body.String()
	assert.Contains(t, frames, "data:")
	assert.Contains(t, frames, "Dear team, ")
	assert.Contains(t, frames, `"type":"complete"`)

	// Terminal frame is last.
	trimmed := strings.TrimSpace(frames)
	lastFrame := trimmed[strings.LastIndex(trimmed, "data:"):]
	assert.Contains(t, lastFrame, `"type":"complete"`)
}

func TestTransform_RejectsShortText(t *testing.T) {
	r := testRouter(&fakeStreamer{})

	body, _ := json.Marshal(map[string]string{"text": "hi"})
	req := httptest.NewRequest(http.MethodPost, "/api/site-scribe/transform", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least 5 characters")
}

func TestTransform_RejectsMissingText(t *testing.T) {
	r := testRouter(&fakeStreamer{})

	req := httptest.NewRequest(http.MethodPost, "/api/site-scribe/transform", strings.NewReader(`{"tone": "firm"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuery_RejectsMissingFile(t *testing.T) {
	r := testRouter(&fakeStreamer{})

	req := httptest.NewRequest(http.MethodPost, "/api/code-commander/query", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "file is required")
}

func TestQuery_RejectsShortQuestion(t *testing.T) {
	r := testRouter(&fakeStreamer{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "doc.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("question", "a"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/code-commander/query", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least 3 characters")
}

func TestQuery_RejectsNonPDFUpload(t *testing.T) {
	r := testRouter(&fakeStreamer{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "doc.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("plain text"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("question", "what is this"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/code-commander/query", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must be a PDF")
}

func TestGenerate_RejectsMissingGoal(t *testing.T) {
	r := testRouter(&fakeStreamer{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image_files", "site.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpegdata"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/lookahead-builder/generate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "user_goal is required")
}

func TestGenerate_RejectsMissingPhotos(t *testing.T) {
	r := testRouter(&fakeStreamer{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("user_goal", "finish the room"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/lookahead-builder/generate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "At least one photo")
}

// contractPDF assembles a minimal one-page PDF carrying the given text,
// computing the cross-reference table as it goes.
func contractPDF(text string) []byte {
	var buf bytes.Buffer
	var offsets []int
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")
	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	writeObj("2 0 obj\n<< /Type /Pages /Kids [4 0 R] /Count 1 >>\nendobj\n")
	writeObj("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")
	writeObj("4 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents 5 0 R >>\nendobj\n")
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	writeObj(fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream))

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefPos)

	return buf.Bytes()
}

func contractUpload(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "contract.pdf")
	require.NoError(t, err)
	_, err = part.Write(contractPDF("Indemnification clause review fixture"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// tempFiles returns the files in the OS temp dir matching pattern, as a set.
func tempFiles(t *testing.T, pattern string) map[string]bool {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(os.TempDir(), pattern))
	require.NoError(t, err)
	set := make(map[string]bool, len(matches))
	for _, m := range matches {
		set[m] = true
	}
	return set
}

func TestAnalyze_StreamsAndRemovesTempFile(t *testing.T) {
	fs := &fakeStreamer{fragments: []string{
		`{"risks":[{"clause":"Indemnification","severity":5,` +
			`"contract_language":"Contractor shall indemnify Owner against all claims.",` +
			`"explanation":"One-sided indemnity with no cap."}],` +
			`"overall_risk_level":"High","summary":"One severe clause found."}`,
	}}
	r := testRouter(fs)

	before := tempFiles(t, "contract_hawk_*")

	buf, contentType := contractUpload(t)
	req := httptest.NewRequest(http.MethodPost, "/api/contract-hawk/analyze", buf)
	req.Header.Set("Content-Type", contentType)
	w := newSSERecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	frames := w.Body.String()
	assert.Contains(t, frames, `"type":"progress"`)
	assert.Contains(t, frames, `"stage":1`)
	assert.Contains(t, frames, `"type":"text"`)

	trimmed := strings.TrimSpace(frames)
	lastFrame := trimmed[strings.LastIndex(trimmed, "data:"):]
	assert.Contains(t, lastFrame, `"type":"complete"`)
	assert.Contains(t, lastFrame, "Indemnification")

	// The uploaded contract's temp copy is gone once the response is written.
	assert.Equal(t, before, tempFiles(t, "contract_hawk_*"))
}

func TestAnalyze_RemovesTempFileOnGatewayError(t *testing.T) {
	fs := &fakeStreamer{err: errors.New("model API server error, please try again later")}
	r := testRouter(fs)

	before := tempFiles(t, "contract_hawk_*")

	buf, contentType := contractUpload(t)
	req := httptest.NewRequest(http.MethodPost, "/api/contract-hawk/analyze", buf)
	req.Header.Set("Content-Type", contentType)
	w := newSSERecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	trimmed := strings.TrimSpace(w.Body.String())
	lastFrame := trimmed[strings.LastIndex(trimmed, "data:"):]
	assert.Contains(t, lastFrame, `"type":"error"`)

	assert.Equal(t, before, tempFiles(t, "contract_hawk_*"))
}

func TestCompare_RejectsMissingProductFile(t *testing.T) {
	r := testRouter(&fakeStreamer{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("spec_file", "spec.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/submittal-scrubber/compare", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "product_file is required")
}
