package task

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NCUHOME-Y/TimeLedger-BE/internal/models"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/repository"
)

// Reconciler 整批替换一个用户的任务集
// 文档库没有跨文档事务，删除和插入之间并发读会看到空集或半批，
// 登录时的 sweep 会从任务集合重新推导引用缓存，作为兜底修复
type Reconciler struct {
	tasks repository.TaskRepository
	users repository.UserRepository

	// 同一用户的两次提交串行化，避免删除和插入互相交错
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewReconciler(tasks repository.TaskRepository, users repository.UserRepository) *Reconciler {
	return &Reconciler{tasks: tasks, users: users, locks: map[string]*sync.Mutex{}}
}

func (r *Reconciler) ownerLock(email string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[email]
	if !ok {
		l = &sync.Mutex{}
		r.locks[email] = l
	}
	return l
}

// Replace 用已经过校验的 batch 替换 email 名下的全部任务，
// 并把用户的 currentTask 引用更新为新插入的文档 id
func (r *Reconciler) Replace(ctx context.Context, email string, batch []models.Task) ([]models.Task, error) {
	l := r.ownerLock(email)
	l.Lock()
	defer l.Unlock()

	if _, err := r.tasks.DeleteByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("delete tasks for %s: %w", email, err)
	}

	refs := make([]primitive.ObjectID, 0, len(batch))
	inserted := make([]models.Task, 0, len(batch))
	for i := range batch {
		t := batch[i]
		id, err := r.tasks.Insert(ctx, &t)
		if err != nil {
			log.WithError(err).WithField("email", email).Error("Replace failed, partial insert")
			return nil, fmt.Errorf("insert task: %w", err)
		}
		refs = append(refs, id)
		inserted = append(inserted, t)
	}
	// 插入条数必须等于提交条数，不允许静默半批
	if len(refs) != len(batch) {
		return nil, fmt.Errorf("inserted %d of %d tasks", len(refs), len(batch))
	}

	if err := r.users.UpdateCurrentTask(ctx, email, refs); err != nil {
		return nil, fmt.Errorf("update currentTask refs: %w", err)
	}
	return inserted, nil
}
