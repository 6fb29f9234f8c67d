package types

// UploadedDocument 表示用户当前选择的简历文件
// 仅在一次分析会话期间驻留内存，不做任何持久化
type UploadedDocument struct {
	// 原始文件名（保留扩展名，发送给分析服务时保持不变）
	Name string
	// 文件字节大小
	Size int64
	// 文件原始内容
	Content []byte
}

// SkillMatch 技能匹配情况
type SkillMatch struct {
	// Present 简历中已具备的技能
	Present []string `json:"present"`
	// Missing 岗位要求但简历中缺失的技能
	Missing []string `json:"missing"`
}

// AnalysisResult 一次分析调用的规范化结果
// 构造完成后不可变：只会被整体替换或追加进历史，不允许就地修改
type AnalysisResult struct {
	// ID 本地生成的短标识，仅用于路由和展示，与服务端无关联
	ID string `json:"id"`
	// Score 简历与岗位的总体匹配分数 (0-100)
	Score int `json:"score"`
	// Keywords 命中的关键词（保留服务端返回顺序）
	Keywords []string `json:"keywords"`
	// MissingKeywords 未命中的关键词
	MissingKeywords []string `json:"missing_keywords"`
	// Skills 技能匹配明细
	Skills SkillMatch `json:"skills"`
	// Improvements 改进建议列表
	Improvements []string `json:"improvements"`
	// ATSCompatibility ATS兼容性分数 (0-100)，当前与Score取同一值
	ATSCompatibility int `json:"ats_compatibility"`
}

// AnalyzerResponse 外部分析服务的原始响应结构
// 所有字段均为可选：缺失的字段在规范化时映射为零值或空序列
type AnalyzerResponse struct {
	Score           int      `json:"score"`
	Keywords        []string `json:"keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	ImprovementTips []string `json:"improvement_tips"`
}
