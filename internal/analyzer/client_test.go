package analyzer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer-go/internal/analyzer"
	"resume-analyzer-go/internal/types"
)

func testDocument() *types.UploadedDocument {
	content := []byte("%PDF-1.4 dummy resume content")
	return &types.UploadedDocument{
		Name:    "resume.pdf",
		Size:    int64(len(content)),
		Content: content,
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	var gotFilename, gotDescription string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/analyze", r.URL.Path)

		// 恰好两个part：resume文件与job_description文本
		require.NoError(t, r.ParseMultipartForm(10<<20))
		file, header, err := r.FormFile("resume")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		gotDescription = r.FormValue("job_description")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"score": 78,
			"keywords": ["python"],
			"missing_keywords": ["docker"],
			"strengths": ["teamwork"],
			"weaknesses": ["leadership"],
			"improvement_tips": ["quantify impact"]
		}`))
	}))
	defer server.Close()

	client := analyzer.NewClient(server.URL)
	result, err := client.Analyze(context.Background(), testDocument(), "We need a Go engineer")
	require.NoError(t, err)

	assert.Equal(t, "resume.pdf", gotFilename)
	assert.Equal(t, "We need a Go engineer", gotDescription)

	assert.Equal(t, 78, result.Score)
	assert.Equal(t, 78, result.ATSCompatibility)
	assert.Equal(t, []string{"python"}, result.Keywords)
	assert.Equal(t, []string{"docker"}, result.MissingKeywords)
	assert.Equal(t, []string{"teamwork"}, result.Skills.Present)
	assert.Equal(t, []string{"leadership"}, result.Skills.Missing)
	assert.Equal(t, []string{"quantify impact"}, result.Improvements)
	assert.Len(t, result.ID, 7)
}

func TestAnalyzeDefaultsForAbsentFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := analyzer.NewClient(server.URL)
	result, err := client.Analyze(context.Background(), testDocument(), "jd")
	require.NoError(t, err)

	// 缺失字段映射为零分与空序列，而不是nil
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.ATSCompatibility)
	assert.NotNil(t, result.Keywords)
	assert.Empty(t, result.Keywords)
	assert.NotNil(t, result.MissingKeywords)
	assert.NotNil(t, result.Skills.Present)
	assert.NotNil(t, result.Skills.Missing)
	assert.NotNil(t, result.Improvements)
}

func TestAnalyzeServerErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "internal detail that must stay in logs"}`))
	}))
	defer server.Close()

	client := analyzer.NewClient(server.URL)
	result, err := client.Analyze(context.Background(), testDocument(), "jd")

	// 非2xx一律映射为通用的Server error，响应体不透出
	require.ErrorIs(t, err, analyzer.ErrServerError)
	assert.Equal(t, "Server error", err.Error())
	assert.Nil(t, result)
}

func TestAnalyzeNonJSONResponse(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusBadGateway} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(status)
			_, _ = w.Write([]byte("<html>upstream proxy page</html>"))
		}))

		client := analyzer.NewClient(server.URL)
		result, err := client.Analyze(context.Background(), testDocument(), "jd")
		server.Close()

		// 非JSON内容类型与状态码无关，一律是Unexpected response
		require.ErrorIs(t, err, analyzer.ErrUnexpectedResponse, "status %d", status)
		assert.Nil(t, result)
	}
}

func TestAnalyzeMalformedJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"score": `))
	}))
	defer server.Close()

	client := analyzer.NewClient(server.URL)
	_, err := client.Analyze(context.Background(), testDocument(), "jd")
	require.ErrorIs(t, err, analyzer.ErrUnexpectedResponse)
}

func TestAnalyzeTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // 立即关闭，制造连接失败

	client := analyzer.NewClient(server.URL)
	_, err := client.Analyze(context.Background(), testDocument(), "jd")

	require.Error(t, err)
	assert.NotErrorIs(t, err, analyzer.ErrServerError)
	assert.NotErrorIs(t, err, analyzer.ErrUnexpectedResponse)
	assert.Contains(t, err.Error(), "analysis request failed")
}

func TestAnalyzeTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := analyzer.NewClient(server.URL, analyzer.WithTimeout(50*time.Millisecond))
	_, err := client.Analyze(context.Background(), testDocument(), "jd")
	require.Error(t, err)
}

func TestNormalizePreservesOrder(t *testing.T) {
	wire := &types.AnalyzerResponse{
		Score:    91,
		Keywords: []string{"go", "kubernetes", "grpc"},
	}

	result := analyzer.Normalize(wire)
	assert.Equal(t, []string{"go", "kubernetes", "grpc"}, result.Keywords)
	assert.Equal(t, 91, result.Score)
	assert.Equal(t, 91, result.ATSCompatibility)
}

func TestNewAnalysisID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := analyzer.NewAnalysisID()
		require.Len(t, id, 7)
		for _, r := range id {
			valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
			require.True(t, valid, "unexpected character %q in id %q", r, id)
		}
		seen[id] = true
	}
	// 不保证全局唯一，但100次抽样不应全部碰撞
	assert.Greater(t, len(seen), 1)
}
