package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/NCUHOME-Y/TimeLedger-BE/internal/models"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate document")
)

// UserRepository 用户集合的基本操作
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	// UpdateCurrentTask 把用户的当前任务引用整体替换为 refs
	UpdateCurrentTask(ctx context.Context, email string, refs []primitive.ObjectID) error
	// Delete 按 email 删除，返回删除条数
	Delete(ctx context.Context, email string) (int64, error)
}

// TaskRepository 任务集合的基本操作
type TaskRepository interface {
	// FindByEmail 返回该用户的全部任务，按 startTime 升序
	FindByEmail(ctx context.Context, email string) ([]models.Task, error)
	Insert(ctx context.Context, task *models.Task) (primitive.ObjectID, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
	DeleteByIDs(ctx context.Context, email string, ids []primitive.ObjectID) (int64, error)
}

// InsightRepository 洞察集合的基本操作
type InsightRepository interface {
	FindByEmail(ctx context.Context, email string) ([]models.Insight, error)
	Insert(ctx context.Context, insight *models.Insight) (primitive.ObjectID, error)
	// DeleteByDay 删除 (email, 自然日) 对应的洞察，返回删除条数
	DeleteByDay(ctx context.Context, email string, day time.Time) (int64, error)
}
