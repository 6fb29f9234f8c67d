package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol"

	"resume-analyzer-go/internal/api/handler"
	"resume-analyzer-go/internal/constants"
	"resume-analyzer-go/internal/session"
)

// SessionMiddleware 为每个请求绑定会话存储
//
// 从Cookie取会话ID（没有则签发新的），在管理器中取出或创建对应的
// 存储实例并注入请求上下文。所有页面与变更处理器都嵌套在这个会话
// 作用域之下，作用域之外取存储会直接panic。
func SessionMiddleware(mgr *session.Manager) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		sid := string(c.Cookie(constants.SessionCookieName))
		if sid == "" {
			sid = session.NewSessionID()
			c.SetCookie(constants.SessionCookieName, sid, 0, "/", "",
				protocol.CookieSameSiteLaxMode, false, true)
		}
		store := mgr.GetOrCreate(sid)
		c.Next(session.NewContext(ctx, store))
	}
}

// RegisterRoutes 注册全部路由
func RegisterRoutes(h *server.Hertz, mgr *session.Manager,
	pages *handler.PageHandler, analysis *handler.AnalysisHandler) {

	h.Use(SessionMiddleware(mgr))

	// 只读页面
	h.GET("/", pages.HandleHome)
	h.GET("/analyze", pages.HandleAnalyzePage)
	h.GET("/results/:id", pages.HandleResultsPage)
	h.GET("/dashboard", pages.HandleDashboard)

	// 提交流程的状态变更
	h.POST("/analyze/resume", analysis.HandleResumeUpload)
	h.POST("/analyze/resume/remove", analysis.HandleRemoveFile)
	h.POST("/analyze/step", analysis.HandleStep)
	h.POST("/analyze/description", analysis.HandleDescription)
	h.POST("/analyze/submit", analysis.HandleSubmit)

	// 静态资源
	h.Static("/static", "./")

	// 健康检查
	api := h.Group("/api/v1")
	api.GET("/health", pages.HandleHealth)

	// 其余路径一律渲染404页
	h.NoRoute(pages.HandleNotFound)
}
