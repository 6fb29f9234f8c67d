// Package view 承载结果与历史视图的纯展示计算，不做任何状态修改
package view

import (
	"fmt"
	"html/template"
	"math"
	"math/rand/v2"

	"resume-analyzer-go/internal/types"
)

// Band 分数档位：标签加展示色
type Band struct {
	Label string
	Color string
}

// BandFor 返回分数对应的档位
// 阈值是对外契约：>=85 Excellent/green，>=70 Good/yellow，否则 Needs Improvement/red
func BandFor(score int) Band {
	switch {
	case score >= 85:
		return Band{Label: "Excellent", Color: "green"}
	case score >= 70:
		return Band{Label: "Good", Color: "yellow"}
	default:
		return Band{Label: "Needs Improvement", Color: "red"}
	}
}

// MatchRatio 计算命中率百分比（四舍五入到整数）
// 两个序列同时为空时按约定返回100，避免除零
func MatchRatio(matched, missing int) int {
	total := matched + missing
	if total == 0 {
		return 100
	}
	return int(math.Round(100 * float64(matched) / float64(total)))
}

// Stats 历史聚合统计
type Stats struct {
	AverageScore int
	AverageATS   int
	Total        int
	// Trend 最近两次分数的走向："up"、"down"，不足两条时为空串（不渲染）
	Trend string
}

// ComputeStats 对历史列表做一次只读归约
// 空历史返回零值Stats，由模板渲染专门的空状态，绝不发生除零
func ComputeStats(history []types.AnalysisResult) Stats {
	stats := Stats{Total: len(history)}
	if len(history) == 0 {
		return stats
	}

	scoreSum, atsSum := 0, 0
	for _, item := range history {
		scoreSum += item.Score
		atsSum += item.ATSCompatibility
	}
	stats.AverageScore = int(math.Round(float64(scoreSum) / float64(len(history))))
	stats.AverageATS = int(math.Round(float64(atsSum) / float64(len(history))))

	// 历史是最新在前：下标0对比下标1，严格大于才算上升
	if len(history) >= 2 {
		if history[0].Score > history[1].Score {
			stats.Trend = "up"
		} else {
			stats.Trend = "down"
		}
	}
	return stats
}

// SyntheticSubScores 雷达图中服务端没有返回的维度
//
// 这些值是纯装饰性的演示数据，与真实信号无关，只为图形完整；
// 正确性测试不得依赖这些维度。
type SyntheticSubScores struct {
	KeywordMatch    int // 70-89
	FormatStructure int // 75-94
	ContentQuality  int // 65-94
}

// NewSyntheticSubScores 生成一组有界伪随机的演示分数
func NewSyntheticSubScores() SyntheticSubScores {
	return SyntheticSubScores{
		KeywordMatch:    70 + rand.IntN(20),
		FormatStructure: 75 + rand.IntN(20),
		ContentQuality:  65 + rand.IntN(30),
	}
}

// FormatKB 把字节大小格式化为KB文本
func FormatKB(size int64) string {
	return fmt.Sprintf("%.2f KB", float64(size)/1024)
}

// FuncMap 提供给HTML模板的辅助函数
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"bandFor":    BandFor,
		"matchRatio": MatchRatio,
		"formatKB":   FormatKB,
		"add":        func(a, b int) int { return a + b },
		"remainder":  func(score int) int { return 100 - score },
	}
}
