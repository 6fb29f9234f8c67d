package session

import (
	"context"
	"strings"
	"sync"

	"resume-analyzer-go/internal/constants"
	"resume-analyzer-go/internal/types"
)

// Store 单个会话的状态存储，是当前上传、岗位描述、分析结果与历史的唯一可信来源
// 所有字段仅驻留进程内存，会话过期后整体丢弃
// 宿主是多线程HTTP服务器，读写都必须经过内部互斥锁
type Store struct {
	mu sync.RWMutex

	currentFile    *types.UploadedDocument
	jobDescription string
	analysisResult *types.AnalysisResult
	isAnalyzing    bool
	// analysisHistory 仅允许头部插入，最新的结果在下标0
	analysisHistory []types.AnalysisResult

	// 提交流程的展示状态：当前步骤与最近一次错误文案
	activeStep int
	lastError  string
}

// NewStore 创建一个空白会话存储，初始处于第一步
func NewStore() *Store {
	return &Store{activeStep: constants.StepUpload}
}

// SetCurrentFile 替换当前简历文件，传入nil表示清除（移除文件操作）
func (s *Store) SetCurrentFile(file *types.UploadedDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentFile = file
}

// CurrentFile 返回当前简历文件，未上传时为nil
func (s *Store) CurrentFile() *types.UploadedDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentFile
}

// SetJobDescription 原样保存岗位描述文本，不做裁剪或校验
func (s *Store) SetJobDescription(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobDescription = text
}

// JobDescription 返回岗位描述文本
func (s *Store) JobDescription() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobDescription
}

// HasJobDescription 判断岗位描述去除首尾空白后是否非空
func (s *Store) HasJobDescription() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return strings.TrimSpace(s.jobDescription) != ""
}

// SetAnalysisResult 替换最近一次分析结果，传入nil表示清除
func (s *Store) SetAnalysisResult(result *types.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysisResult = result
}

// AnalysisResult 返回最近一次分析结果，不存在时为nil
func (s *Store) AnalysisResult() *types.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analysisResult
}

// SetIsAnalyzing 设置在途请求标记
// 仅在出站请求挂起期间为true，包括失败在内的其他时刻必须为false
func (s *Store) SetIsAnalyzing(analyzing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isAnalyzing = analyzing
}

// IsAnalyzing 返回在途请求标记
func (s *Store) IsAnalyzing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAnalyzing
}

// BeginAnalysis 原子地检查并置位在途标记
// 已有请求在途时返回false，用于在交互层拒绝重复提交
func (s *Store) BeginAnalysis() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isAnalyzing {
		return false
	}
	s.isAnalyzing = true
	return true
}

// AddToHistory 将结果头插进历史，不去重、不合并、不淘汰
func (s *Store) AddToHistory(result types.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysisHistory = append([]types.AnalysisResult{result}, s.analysisHistory...)
}

// History 返回历史快照（最新在前）
// 返回副本，调用方不会影响内部序列
func (s *Store) History() []types.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.AnalysisResult, len(s.analysisHistory))
	copy(out, s.analysisHistory)
	return out
}

// SetActiveStep 设置提交流程当前步骤
func (s *Store) SetActiveStep(step int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeStep = step
}

// ActiveStep 返回提交流程当前步骤
func (s *Store) ActiveStep() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeStep
}

// SetLastError 设置面向用户的最近一次错误文案，空串表示清除
func (s *Store) SetLastError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
}

// LastError 返回最近一次错误文案
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

type contextKey struct{}

// NewContext 将会话存储注入上下文，由会话中间件在每个请求上调用
func NewContext(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, store)
}

// FromContext 从上下文中取出会话存储
// 在会话作用域之外调用属于接线错误，返回ok=false
func FromContext(ctx context.Context) (*Store, bool) {
	store, ok := ctx.Value(contextKey{}).(*Store)
	return store, ok
}

// MustFromContext 从上下文中取出会话存储，取不到时直接panic
// 会话作用域缺失是程序员错误而非用户错误，必须以故障形式暴露，不允许吞掉
func MustFromContext(ctx context.Context) *Store {
	store, ok := FromContext(ctx)
	if !ok {
		panic("session: store accessed outside an active session scope")
	}
	return store
}
