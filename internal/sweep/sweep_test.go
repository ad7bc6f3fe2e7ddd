package sweep

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NCUHOME-Y/TimeLedger-BE/internal/insight"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/models"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/repository"
)

var (
	today     = time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	yesterday = today.AddDate(0, 0, -1)
)

type fixture struct {
	sweeper  *Sweeper
	tasks    *repository.MemoryTaskRepository
	users    *repository.MemoryUserRepository
	insights *repository.MemoryInsightRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		tasks:    repository.NewMemoryTaskRepository(),
		users:    repository.NewMemoryUserRepository(),
		insights: repository.NewMemoryInsightRepository(),
	}
	_, err := f.users.Insert(context.Background(), &models.User{Email: "a@b.com"})
	require.NoError(t, err)
	f.sweeper = NewSweeper(f.tasks, f.users, insight.NewEngine(f.insights))
	// 固定“今天”，测试不依赖墙上时钟
	f.sweeper.now = func() time.Time { return today.Add(10 * time.Hour) }
	return f
}

func (f *fixture) addTask(t *testing.T, day time.Time, startH, endH int, used float64) models.Task {
	t.Helper()
	task := models.Task{
		Email:     "a@b.com",
		StartTime: day.Add(time.Duration(startH) * time.Hour),
		EndTime:   day.Add(time.Duration(endH) * time.Hour),
		TimeUsed:  used,
		DateAdded: day,
	}
	_, err := f.tasks.Insert(context.Background(), &task)
	require.NoError(t, err)
	return task
}

func TestRunPartitionsExpiredAndCurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addTask(t, yesterday, 9, 13, 3)
	f.addTask(t, yesterday, 14, 16, 2)
	kept := f.addTask(t, today, 9, 10, 1)

	f.sweeper.Run(ctx, "a@b.com")

	// 昨天的进了洞察并被删掉，今天的留下并挂回引用
	remaining, err := f.tasks.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)

	ins, err := f.insights.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.Len(t, ins, 1)
	assert.Equal(t, yesterday, ins[0].DateAdded)
	assert.Equal(t, 6.0, ins[0].TotalTimeLogged)
	assert.Equal(t, 5.0, ins[0].TimeUsed)

	u, err := f.users.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.Len(t, u.CurrentTask, 1)
	assert.Equal(t, kept.ID, u.CurrentTask[0])
}

func TestRunGroupsExpiredByDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	twoDaysAgo := today.AddDate(0, 0, -2)
	f.addTask(t, twoDaysAgo, 9, 11, 1)
	f.addTask(t, yesterday, 9, 11, 2)

	f.sweeper.Run(ctx, "a@b.com")

	// 每天一条洞察
	ins, err := f.insights.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.Len(t, ins, 2)
	assert.Equal(t, twoDaysAgo, ins[0].DateAdded)
	assert.Equal(t, yesterday, ins[1].DateAdded)
}

func TestRunRepairsStaleRefs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 模拟 reconciler 在删除和更新引用之间崩溃：引用指向早已不存在的文档
	stale := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
	require.NoError(t, f.users.UpdateCurrentTask(ctx, "a@b.com", stale))
	kept := f.addTask(t, today, 9, 10, 1)

	f.sweeper.Run(ctx, "a@b.com")

	// 引用缓存从任务集合重新推导，旧引用被清掉
	u, err := f.users.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.Len(t, u.CurrentTask, 1)
	assert.Equal(t, kept.ID, u.CurrentTask[0])
}

func TestRunEmptySetClearsRefs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.users.UpdateCurrentTask(ctx, "a@b.com", []primitive.ObjectID{primitive.NewObjectID()}))

	f.sweeper.Run(ctx, "a@b.com")

	u, err := f.users.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Empty(t, u.CurrentTask)
}

// 删除失败只记日志，Run 正常返回，不影响登录
type failingTaskRepo struct {
	repository.TaskRepository
}

func (f *failingTaskRepo) DeleteByIDs(ctx context.Context, email string, ids []primitive.ObjectID) (int64, error) {
	return 0, errors.New("storage down")
}

func TestRunSwallowsStorageErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addTask(t, yesterday, 9, 11, 1)

	f.sweeper.tasks = &failingTaskRepo{TaskRepository: f.tasks}

	assert.NotPanics(t, func() { f.sweeper.Run(ctx, "a@b.com") })

	// 洞察照常生成，引用照常重建
	ins, err := f.insights.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Len(t, ins, 1)
}
