// Package analyzer 封装对外部简历分析服务的唯一一次出站调用
//
// 分析服务是一个黑盒：简历解析、关键词抽取和打分全部发生在服务端，
// 本包只负责组装multipart请求、区分失败类别并把响应规范化成内部结果结构。
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"resume-analyzer-go/internal/logger"
	"resume-analyzer-go/internal/tracing"
	"resume-analyzer-go/internal/types"
)

// analyzePath 分析接口在BaseURL下的固定路径
const analyzePath = "/analyze"

// Client 外部分析服务的HTTP客户端
type Client struct {
	// BaseURL 服务基础地址，例如 https://analyzer.example.com
	BaseURL string
	// HTTPClient 可配置超时等参数
	HTTPClient *http.Client

	tracer trace.Tracer
}

// Option 客户端配置选项
type Option func(*Client)

// WithTimeout 配置HTTP客户端超时时间
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.HTTPClient.Timeout = timeout
	}
}

// WithHTTPClient 替换底层HTTP客户端（测试注入用）
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.HTTPClient = hc
	}
}

// NewClient 创建分析服务客户端
func NewClient(baseURL string, options ...Option) *Client {
	client := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		tracer: otel.Tracer("resume-analyzer-go/internal/analyzer"),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// Analyze 提交一次分析请求并返回规范化结果
//
// 请求体是恰好两个part的multipart表单：resume（原始文件名保留的二进制文件）
// 和 job_description（UTF-8文本）。响应按声明的内容类型分支处理：
//   - JSON内容类型：解析为预期的结果结构
//   - 其他内容类型：响应体只做诊断日志，返回ErrUnexpectedResponse
//
// 非2xx状态码一律映射为ErrServerError，解析出的响应体同样只进日志。
func (c *Client) Analyze(ctx context.Context, doc *types.UploadedDocument, jobDescription string) (*types.AnalysisResult, error) {
	ctx, span := c.tracer.Start(ctx, "analyzer.Analyze")
	defer span.End()

	// 为每次提交生成UUIDv7，仅用于日志与span关联，不发给服务端也不展示给用户
	submissionUUID := ""
	if u, err := uuid.NewV7(); err == nil {
		submissionUUID = u.String()
	}
	span.SetAttributes(
		attribute.String("analysis.submission_uuid", submissionUUID),
		attribute.String("analysis.filename", tracing.TruncateString(doc.Name, tracing.MaxFilenameLength)),
		attribute.Int64("analysis.file_size", doc.Size),
		attribute.Int("analysis.description_length", len(jobDescription)),
	)

	startTime := time.Now()
	logger.Info().
		Str("submission_uuid", submissionUUID).
		Str("filename", doc.Name).
		Int64("size", doc.Size).
		Msg("开始请求外部分析服务")

	body, contentType, err := buildMultipartBody(doc, jobDescription)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return nil, fmt.Errorf("构造multipart请求体失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+analyzePath, body)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return nil, fmt.Errorf("创建分析请求失败: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		// 传输层失败：网络不可达、超时等
		tracing.RecordError(span, err, tracing.ErrorTypeTransport)
		logger.Error().
			Err(err).
			Str("submission_uuid", submissionUUID).
			Msg("请求外部分析服务失败")
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	respContentType := resp.Header.Get("Content-Type")
	span.SetAttributes(
		attribute.Int("http.status_code", resp.StatusCode),
		attribute.String("http.response_content_type", respContentType),
	)

	// 非JSON内容类型：不尝试JSON解析，响应体仅做诊断记录
	if !strings.Contains(respContentType, "application/json") {
		raw, _ := io.ReadAll(resp.Body)
		logger.Error().
			Str("submission_uuid", submissionUUID).
			Int("status", resp.StatusCode).
			Str("content_type", respContentType).
			Str("body", tracing.SafeResponseBody(string(raw))).
			Msg("外部分析服务返回了非JSON响应")
		tracing.RecordError(span, ErrUnexpectedResponse, tracing.ErrorTypeProtocol)
		return nil, ErrUnexpectedResponse
	}

	var wire types.AnalyzerResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&wire)

	// 状态码失败优先于解析结果：响应体不透出，只进日志
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error().
			Str("submission_uuid", submissionUUID).
			Int("status", resp.StatusCode).
			Interface("body", wire).
			Msg("外部分析服务返回错误状态码")
		tracing.RecordHTTPError(span, ErrServerError, resp.StatusCode)
		return nil, ErrServerError
	}

	if decodeErr != nil {
		logger.Error().
			Err(decodeErr).
			Str("submission_uuid", submissionUUID).
			Msg("解析外部分析服务响应失败")
		tracing.RecordError(span, decodeErr, tracing.ErrorTypeProtocol)
		return nil, ErrUnexpectedResponse
	}

	result := Normalize(&wire)

	logger.Info().
		Str("submission_uuid", submissionUUID).
		Str("analysis_id", result.ID).
		Int("score", result.Score).
		Dur("elapsed", time.Since(startTime)).
		Msg("分析完成")
	span.SetAttributes(attribute.String("analysis.result_id", result.ID))

	return result, nil
}

// buildMultipartBody 组装恰好两个part的multipart表单体
func buildMultipartBody(doc *types.UploadedDocument, jobDescription string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("resume", doc.Name)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(doc.Content); err != nil {
		return nil, "", err
	}

	if err := writer.WriteField("job_description", jobDescription); err != nil {
		return nil, "", err
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}

// Normalize 把服务端的异构响应映射为内部结果结构
//
// 任一字段都可能缺失：缺失的数值映射为0，缺失的序列映射为空序列，
// 服务端给出的顺序原样保留。结果ID在本地生成，与服务端无关。
// ATS兼容性分数当前与总分取同一值，服务端没有独立字段。
func Normalize(wire *types.AnalyzerResponse) *types.AnalysisResult {
	return &types.AnalysisResult{
		ID:              NewAnalysisID(),
		Score:           wire.Score,
		Keywords:        emptyIfNil(wire.Keywords),
		MissingKeywords: emptyIfNil(wire.MissingKeywords),
		Skills: types.SkillMatch{
			Present: emptyIfNil(wire.Strengths),
			Missing: emptyIfNil(wire.Weaknesses),
		},
		Improvements:     emptyIfNil(wire.ImprovementTips),
		ATSCompatibility: wire.Score,
	}
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
