package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"resume-analyzer-go/internal/analyzer"
	"resume-analyzer-go/internal/constants"
	"resume-analyzer-go/internal/intake"
	"resume-analyzer-go/internal/logger"
	"resume-analyzer-go/internal/session"
)

// routeAnalyze 提交流程页面路径，所有状态变更完成后都回到这里
const routeAnalyze = "/analyze"

// AnalysisHandler 驱动三步提交流程与外部分析调用的控制器
type AnalysisHandler struct {
	client *analyzer.Client
}

// NewAnalysisHandler 创建分析流程控制器
func NewAnalysisHandler(client *analyzer.Client) *AnalysisHandler {
	return &AnalysisHandler{client: client}
}

// HandleResumeUpload 接收用户选择的简历文件（第一步）
//
// 空选择是no-op：不报错也不改状态。多个文件时只考虑第一个。
// 校验失败时既有文件保持原样，错误文案写入会话供页面展示。
func (h *AnalysisHandler) HandleResumeUpload(ctx context.Context, c *app.RequestContext) {
	store := session.MustFromContext(ctx)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		// 未选择文件：直接回到流程页
		c.Redirect(consts.StatusSeeOther, []byte(routeAnalyze))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("打开上传文件失败")
		store.SetLastError("Failed to read the uploaded file.")
		c.Redirect(consts.StatusSeeOther, []byte(routeAnalyze))
		return
	}
	defer file.Close()

	// 校验结果已写入会话状态，错误在流程页内联展示
	_ = intake.Accept(store, fileHeader.Filename, fileHeader.Size, file)

	c.Redirect(consts.StatusSeeOther, []byte(routeAnalyze))
}

// HandleRemoveFile 移除当前文件并回到第一步
func (h *AnalysisHandler) HandleRemoveFile(ctx context.Context, c *app.RequestContext) {
	store := session.MustFromContext(ctx)
	intake.Remove(store)
	c.Redirect(consts.StatusSeeOther, []byte(routeAnalyze))
}

// HandleStep 手动在第一步与第二步之间切换
// 只有已上传文件时才允许前进到第二步；回退到第一步没有限制
func (h *AnalysisHandler) HandleStep(ctx context.Context, c *app.RequestContext) {
	store := session.MustFromContext(ctx)

	step, err := strconv.Atoi(c.PostForm("step"))
	if err == nil {
		switch step {
		case constants.StepUpload:
			store.SetActiveStep(constants.StepUpload)
		case constants.StepDescribe:
			if store.CurrentFile() != nil {
				store.SetActiveStep(constants.StepDescribe)
			}
		}
	}

	c.Redirect(consts.StatusSeeOther, []byte(routeAnalyze))
}

// HandleDescription 保存岗位描述文本
// 文本原样入库不做裁剪；每次修改都会清除既往错误，与输入时清错的交互一致
func (h *AnalysisHandler) HandleDescription(ctx context.Context, c *app.RequestContext) {
	store := session.MustFromContext(ctx)
	store.SetJobDescription(c.PostForm("job_description"))
	store.SetLastError("")
	c.Redirect(consts.StatusSeeOther, []byte(routeAnalyze))
}

// HandleSubmit 提交分析（仅第二步可达）
//
// 前置校验按顺序进行，第一个失败的检查生效：
//  1. 必须已上传文件，否则报错并强制回到第一步
//  2. 岗位描述去除首尾空白后必须非空，否则报错并停留在第二步
//
// 校验通过后置位在途标记、发出唯一一次出站请求。成功时提交结果并
// 跳转到按本地生成标识寻址的结果页；任何失败都转换为一条用户可见
// 的错误文案并复位在途标记，停留在当前步骤，不做自动重试。
func (h *AnalysisHandler) HandleSubmit(ctx context.Context, c *app.RequestContext) {
	store := session.MustFromContext(ctx)

	// 描述文本随提交表单一起到达，先原样保存再校验
	store.SetJobDescription(c.PostForm("job_description"))

	file := store.CurrentFile()
	if file == nil {
		store.SetLastError(constants.MsgMissingResume)
		store.SetActiveStep(constants.StepUpload)
		c.Redirect(consts.StatusSeeOther, []byte(routeAnalyze))
		return
	}

	if !store.HasJobDescription() {
		store.SetLastError(constants.MsgMissingDescription)
		store.SetActiveStep(constants.StepDescribe)
		c.Redirect(consts.StatusSeeOther, []byte(routeAnalyze))
		return
	}

	// 同一时刻最多一个在途请求；提交按钮在分析中会被禁用，这里是兜底
	if !store.BeginAnalysis() {
		c.Redirect(consts.StatusSeeOther, []byte(routeAnalyze))
		return
	}
	store.SetLastError("")

	result, err := h.client.Analyze(ctx, file, store.JobDescription())
	if err != nil {
		store.SetIsAnalyzing(false)
		store.SetLastError("Error: " + err.Error())
		c.Redirect(consts.StatusSeeOther, []byte(routeAnalyze))
		return
	}

	store.SetAnalysisResult(result)
	store.AddToHistory(*result)
	store.SetIsAnalyzing(false)

	c.Redirect(consts.StatusSeeOther, []byte("/results/"+result.ID))
}
