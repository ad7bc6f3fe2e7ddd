package insight

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/NCUHOME-Y/TimeLedger-BE/internal/models"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/constant"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/repository"
)

// 利用率分档阈值，按顺序命中
const (
	greatThreshold = 80
	okayThreshold  = 30
)

// Classify 根据利用率百分比给出评价文案
// >=80 很好；30<p<80 还行；<=30 需要加油
func Classify(percent float64) string {
	switch {
	case percent >= greatThreshold:
		return constant.GreatComment
	case percent > okayThreshold && percent < greatThreshold:
		return constant.OkayComment
	case percent <= okayThreshold:
		return constant.ImproveComment
	default:
		return constant.DefaultComment
	}
}

// Summarize 把一批同人同天的过期任务汇总成一条洞察
// owner 和 dateAdded 取第一条，批次默认同质，不再逐条核对
func Summarize(tasks []models.Task) models.Insight {
	var timeUsed, totalLogged float64
	for _, t := range tasks {
		timeUsed += t.TimeUsed
		totalLogged += t.SpanHours()
	}

	// 总墙上时长为 0 时除法无意义，记 0% 并给无数据文案
	percent := 0.0
	comment := constant.DefaultComment
	if totalLogged > 0 {
		percent = timeUsed / totalLogged * 100
		comment = Classify(percent)
	}

	return models.Insight{
		Email:           tasks[0].Email,
		DateAdded:       models.CivilDay(tasks[0].DateAdded),
		TotalTimeLogged: totalLogged,
		TimeUsed:        timeUsed,
		PercentageUsed:  percent,
		Comment:         comment,
	}
}

// Engine 生成并保存洞察，运行在登录 sweep 的尽力而为上下文里
type Engine struct {
	insights repository.InsightRepository
}

func NewEngine(insights repository.InsightRepository) *Engine {
	return &Engine{insights: insights}
}

// Process 汇总一批过期任务并入库，失败只记日志不往外抛
func (e *Engine) Process(ctx context.Context, tasks []models.Task) {
	if len(tasks) == 0 {
		return
	}
	in := Summarize(tasks)
	if _, err := e.insights.Insert(ctx, &in); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"email": in.Email,
			"day":   in.DateAdded,
		}).Error("Process insight failed")
		return
	}
	log.WithFields(log.Fields{
		"email":   in.Email,
		"day":     in.DateAdded,
		"percent": in.PercentageUsed,
	}).Debug("insight saved")
}
