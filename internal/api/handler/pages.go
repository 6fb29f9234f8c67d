package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"resume-analyzer-go/internal/session"
	"resume-analyzer-go/internal/types"
	"resume-analyzer-go/internal/view"
)

// PageHandler 渲染只读视图：落地页、流程页、结果页、历史面板
// 页面处理器不修改任何会话状态
type PageHandler struct{}

// NewPageHandler 创建页面处理器
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// HandleHome 落地页
func (h *PageHandler) HandleHome(ctx context.Context, c *app.RequestContext) {
	c.HTML(consts.StatusOK, "home.tmpl", utils.H{
		"Title": "Resume Analyzer",
	})
}

// analyzePageData 流程页渲染数据
type analyzePageData struct {
	Step           int
	Error          string
	File           *types.UploadedDocument
	FileSizeText   string
	JobDescription string
	IsAnalyzing    bool
}

// HandleAnalyzePage 三步提交流程页
func (h *PageHandler) HandleAnalyzePage(ctx context.Context, c *app.RequestContext) {
	store := session.MustFromContext(ctx)

	data := analyzePageData{
		Step:           store.ActiveStep(),
		Error:          store.LastError(),
		File:           store.CurrentFile(),
		JobDescription: store.JobDescription(),
		IsAnalyzing:    store.IsAnalyzing(),
	}
	if data.File != nil {
		data.FileSizeText = view.FormatKB(data.File.Size)
	}

	c.HTML(consts.StatusOK, "analyze.tmpl", data)
}

// resultsPageData 结果页渲染数据
type resultsPageData struct {
	ID           string
	Result       *types.AnalysisResult
	FileName     string
	Band         view.Band
	KeywordRatio int
	SkillRatio   int
	// Synthetic 雷达图的装饰性维度，纯演示数据，与真实信号无关
	Synthetic view.SyntheticSubScores
}

// HandleResultsPage 结果页
//
// URL中的标识只用于展示，不做任何历史查找：始终只读取会话里
// 最近一次的结果槽位。槽位为空时（例如新会话直接打开结果链接）
// 渲染专门的未找到状态，并给出重新开始分析的入口。
func (h *PageHandler) HandleResultsPage(ctx context.Context, c *app.RequestContext) {
	store := session.MustFromContext(ctx)

	result := store.AnalysisResult()
	data := resultsPageData{
		ID:     c.Param("id"),
		Result: result,
	}
	if result != nil {
		data.Band = view.BandFor(result.Score)
		data.KeywordRatio = view.MatchRatio(len(result.Keywords), len(result.MissingKeywords))
		data.SkillRatio = view.MatchRatio(len(result.Skills.Present), len(result.Skills.Missing))
		data.Synthetic = view.NewSyntheticSubScores()
		if file := store.CurrentFile(); file != nil {
			data.FileName = file.Name
		}
	}

	c.HTML(consts.StatusOK, "results.tmpl", data)
}

// dashboardPageData 历史面板渲染数据
type dashboardPageData struct {
	History []types.AnalysisResult
	Stats   view.Stats
}

// HandleDashboard 历史聚合面板
func (h *PageHandler) HandleDashboard(ctx context.Context, c *app.RequestContext) {
	store := session.MustFromContext(ctx)

	history := store.History()
	c.HTML(consts.StatusOK, "dashboard.tmpl", dashboardPageData{
		History: history,
		Stats:   view.ComputeStats(history),
	})
}

// HandleNotFound 其余路径的404页
func (h *PageHandler) HandleNotFound(ctx context.Context, c *app.RequestContext) {
	c.HTML(consts.StatusNotFound, "notfound.tmpl", utils.H{
		"Path": string(c.Path()),
	})
}

// HandleHealth 健康检查
func (h *PageHandler) HandleHealth(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, utils.H{"status": "ok"})
}
