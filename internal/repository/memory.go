package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NCUHOME-Y/TimeLedger-BE/internal/models"
)

// 内存实现：本地开发和测试用，不依赖 mongod
// 语义对齐 MongoDB 实现：单文档写入原子，跨文档无事务

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: map[string]*models.User{}}
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	cp.CurrentTask = append([]primitive.ObjectID{}, u.CurrentTask...)
	return &cp, nil
}

func (r *MemoryUserRepository) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return primitive.NilObjectID, ErrDuplicate
	}
	user.ID = primitive.NewObjectID()
	cp := *user
	r.users[user.Email] = &cp
	return user.ID, nil
}

func (r *MemoryUserRepository) UpdateCurrentTask(ctx context.Context, email string, refs []primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil // 与 mongo 的 UpdateOne 一致，不匹配也不报错
	}
	u.CurrentTask = append([]primitive.ObjectID{}, refs...)
	return nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, email string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[email]; !ok {
		return 0, nil
	}
	delete(r.users, email)
	return 1, nil
}

type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks []models.Task
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{}
}

func (r *MemoryTaskRepository) FindByEmail(ctx context.Context, email string) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Task{}
	for _, t := range r.tasks {
		if t.Email == email {
			out = append(out, t)
		}
	}
	// 按 startTime 升序，与 mongo 查询的排序一致
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *MemoryTaskRepository) Insert(ctx context.Context, task *models.Task) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task.ID = primitive.NewObjectID()
	r.tasks = append(r.tasks, *task)
	return task.ID, nil
}

func (r *MemoryTaskRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.tasks[:0]
	var n int64
	for _, t := range r.tasks {
		if t.Email == email {
			n++
			continue
		}
		kept = append(kept, t)
	}
	r.tasks = kept
	return n, nil
}

func (r *MemoryTaskRepository) DeleteByIDs(ctx context.Context, email string, ids []primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idSet := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		idSet[id] = true
	}
	kept := r.tasks[:0]
	var n int64
	for _, t := range r.tasks {
		if t.Email == email && idSet[t.ID] {
			n++
			continue
		}
		kept = append(kept, t)
	}
	r.tasks = kept
	return n, nil
}

type MemoryInsightRepository struct {
	mu       sync.RWMutex
	insights []models.Insight
}

func NewMemoryInsightRepository() *MemoryInsightRepository {
	return &MemoryInsightRepository{}
}

func (r *MemoryInsightRepository) FindByEmail(ctx context.Context, email string) ([]models.Insight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Insight{}
	for _, in := range r.insights {
		if in.Email == email {
			out = append(out, in)
		}
	}
	return out, nil
}

func (r *MemoryInsightRepository) Insert(ctx context.Context, insight *models.Insight) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	insight.ID = primitive.NewObjectID()
	r.insights = append(r.insights, *insight)
	return insight.ID, nil
}

func (r *MemoryInsightRepository) DeleteByDay(ctx context.Context, email string, day time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	from := models.CivilDay(day)
	to := from.Add(24 * time.Hour)
	kept := r.insights[:0]
	var n int64
	for _, in := range r.insights {
		if in.Email == email && !in.DateAdded.Before(from) && in.DateAdded.Before(to) {
			n++
			continue
		}
		kept = append(kept, in)
	}
	r.insights = kept
	return n, nil
}
