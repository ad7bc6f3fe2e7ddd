package task

import (
	"errors"
	"sort"

	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/constant"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/models"
)

// 校验失败的类别，整批任务只要有一条不过就全部拒绝
var (
	ErrEmptyTaskList    = errors.New(constant.InvalidTaskList)
	ErrMissingField     = errors.New(constant.RequiredFieldBlank)
	ErrInvalidTimeRange = errors.New(constant.InvalidTimeRange)
	ErrInvalidTimeUsed  = errors.New(constant.InvalidTimeUsed)
	ErrOverlap          = errors.New("task time ranges overlap")
	ErrDuplicateTask    = errors.New("duplicate task time range")
)

// ValidateBatch 校验一批待提交的任务并按 startTime 升序返回
//
// 规则：
//   - 列表非空，每条的 startTime/endTime/timeUsed/dateAdded 都必须有值
//   - startTime < endTime，且 0 < timeUsed <= 墙上时长（小时）
//   - 排序后相邻两条不能重叠，任意两条的 (startTime, endTime) 不能完全相同
//
// owner 来自鉴权后的身份，客户端传的 email 一律覆盖
func ValidateBatch(owner string, list []models.Task) ([]models.Task, error) {
	if len(list) == 0 {
		return nil, ErrEmptyTaskList
	}

	tasks := make([]models.Task, len(list))
	copy(tasks, list)

	for i := range tasks {
		if tasks[i].StartTime.IsZero() || tasks[i].EndTime.IsZero() ||
			tasks[i].TimeUsed == 0 || tasks[i].DateAdded.IsZero() {
			return nil, ErrMissingField
		}
		tasks[i].Email = owner
		tasks[i].DateAdded = models.CivilDay(tasks[i].DateAdded)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].StartTime.Before(tasks[j].StartTime)
	})

	seen := make(map[[2]int64]bool, len(tasks))
	for i, t := range tasks {
		if !t.StartTime.Before(t.EndTime) {
			return nil, ErrInvalidTimeRange
		}
		if t.TimeUsed <= 0 || t.TimeUsed > t.SpanHours() {
			return nil, ErrInvalidTimeUsed
		}
		key := [2]int64{t.StartTime.UnixMilli(), t.EndTime.UnixMilli()}
		if seen[key] {
			return nil, ErrDuplicateTask
		}
		seen[key] = true
		// 排序后只需要和前一条比较是否重叠
		if i > 0 && tasks[i].StartTime.Before(tasks[i-1].EndTime) {
			return nil, ErrOverlap
		}
	}
	return tasks, nil
}

// IsValidationError 判断是否属于批次校验错误（应映射为 400）
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrEmptyTaskList),
		errors.Is(err, ErrMissingField),
		errors.Is(err, ErrInvalidTimeRange),
		errors.Is(err, ErrInvalidTimeUsed),
		errors.Is(err, ErrOverlap),
		errors.Is(err, ErrDuplicateTask):
		return true
	}
	return false
}
