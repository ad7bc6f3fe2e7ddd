package sweep

import (
	"context"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NCUHOME-Y/TimeLedger-BE/internal/insight"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/models"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/repository"
)

// Sweeper 登录时的过期任务清扫
// 把 dateAdded 早于今天（UTC 自然日）的任务汇总成洞察后删除，
// 剩下的任务引用重建到用户的 currentTask 上
type Sweeper struct {
	tasks  repository.TaskRepository
	users  repository.UserRepository
	engine *insight.Engine

	// 测试时可替换
	now func() time.Time
}

func NewSweeper(tasks repository.TaskRepository, users repository.UserRepository, engine *insight.Engine) *Sweeper {
	return &Sweeper{tasks: tasks, users: users, engine: engine, now: time.Now}
}

// Run 对 email 执行一次清扫
// 整个过程尽力而为：任何一步失败只记日志，绝不影响登录结果
func (s *Sweeper) Run(ctx context.Context, email string) {
	today := models.CivilDay(s.now())

	all, err := s.tasks.FindByEmail(ctx, email)
	if err != nil {
		log.WithError(err).WithField("email", email).Error("sweep: list tasks failed")
		return
	}

	var expired []models.Task
	retained := []primitive.ObjectID{}
	for _, t := range all {
		if models.CivilDay(t.DateAdded).Before(today) {
			expired = append(expired, t)
		} else {
			retained = append(retained, t.ID)
		}
	}

	if len(expired) > 0 {
		// 洞察按人按天一条，多天没登录时过期批里会混多个日期，按天分组处理
		byDay := map[time.Time][]models.Task{}
		for _, t := range expired {
			d := models.CivilDay(t.DateAdded)
			byDay[d] = append(byDay[d], t)
		}
		days := make([]time.Time, 0, len(byDay))
		for d := range byDay {
			days = append(days, d)
		}
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
		for _, d := range days {
			s.engine.Process(ctx, byDay[d])
		}

		ids := make([]primitive.ObjectID, 0, len(expired))
		for _, t := range expired {
			ids = append(ids, t.ID)
		}
		if _, err := s.tasks.DeleteByIDs(ctx, email, ids); err != nil {
			log.WithError(err).WithField("email", email).Error("sweep: delete expired tasks failed")
			// 删除失败也继续重建引用，当前集仍然是权威数据推导出来的
		}
	}

	if err := s.users.UpdateCurrentTask(ctx, email, retained); err != nil {
		log.WithError(err).WithField("email", email).Error("sweep: relink currentTask failed")
		return
	}

	log.WithFields(log.Fields{
		"email":    email,
		"expired":  len(expired),
		"retained": len(retained),
	}).Debug("sweep done")
}
