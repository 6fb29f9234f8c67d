package constants

import "time"

// 分析流程的步骤编号
const (
	// StepUpload 第一步：上传简历
	StepUpload = 1
	// StepDescribe 第二步：填写岗位描述
	StepDescribe = 2
	// StepAnalysis 第三步：查看分析结果（仅通过成功后的跳转到达）
	StepAnalysis = 3
)

// 文件接入限制
const (
	// MaxResumeFileSize 简历文件大小上限（5MB）
	MaxResumeFileSize = 5 * 1024 * 1024
)

// 用户可见的校验与错误文案
// 这些字符串是对外契约的一部分，修改前需要同步更新测试
const (
	MsgFileTooLarge       = "File is too large. Maximum size is 5MB."
	MsgMissingResume      = "Please upload a resume file"
	MsgMissingDescription = "Please enter a job description"
	MsgServerError        = "Server error"
	MsgUnexpectedResponse = "Unexpected response from server"
)

// 会话管理相关默认值
const (
	// SessionCookieName 浏览器会话Cookie名称
	SessionCookieName = "ra_session"
	// DefaultSessionTTL 会话空闲过期时间
	DefaultSessionTTL = 2 * time.Hour
	// DefaultSweepInterval 过期会话清理间隔
	DefaultSweepInterval = 10 * time.Minute
)
