package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/NCUHOME-Y/TimeLedger-BE/internal/models"
)

var day = time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

// at 当天 hour:minute 的时间点
func at(hour, minute int) time.Time {
	return time.Date(2026, 8, 28, hour, minute, 0, 0, time.UTC)
}

func entry(startH, endH int, used float64) models.Task {
	return models.Task{
		StartTime: at(startH, 0),
		EndTime:   at(endH, 0),
		TimeUsed:  used,
		DateAdded: day,
	}
}

func TestValidateBatchRejectsEmptyList(t *testing.T) {
	_, err := ValidateBatch("a@b.com", nil)
	assert.ErrorIs(t, err, ErrEmptyTaskList)

	_, err = ValidateBatch("a@b.com", []models.Task{})
	assert.ErrorIs(t, err, ErrEmptyTaskList)
}

func TestValidateBatchRejectsMissingFields(t *testing.T) {
	missingEnd := entry(9, 10, 1)
	missingEnd.EndTime = time.Time{}
	_, err := ValidateBatch("a@b.com", []models.Task{missingEnd})
	assert.ErrorIs(t, err, ErrMissingField)

	missingUsed := entry(9, 10, 1)
	missingUsed.TimeUsed = 0
	_, err = ValidateBatch("a@b.com", []models.Task{missingUsed})
	assert.ErrorIs(t, err, ErrMissingField)

	missingDay := entry(9, 10, 1)
	missingDay.DateAdded = time.Time{}
	_, err = ValidateBatch("a@b.com", []models.Task{missingDay})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestValidateBatchRejectsOverlapEitherOrder(t *testing.T) {
	a := entry(10, 12, 1) // [10:00, 12:00]
	b := entry(11, 13, 1) // [11:00, 13:00]

	_, err := ValidateBatch("a@b.com", []models.Task{a, b})
	assert.ErrorIs(t, err, ErrOverlap)

	_, err = ValidateBatch("a@b.com", []models.Task{b, a})
	assert.ErrorIs(t, err, ErrOverlap)
}

func TestValidateBatchRejectsDuplicateRange(t *testing.T) {
	a := entry(9, 11, 1)
	b := entry(9, 11, 2) // 起止相同，用时不同也算重复
	_, err := ValidateBatch("a@b.com", []models.Task{a, b})
	assert.ErrorIs(t, err, ErrDuplicateTask)
}

func TestValidateBatchRejectsImpossibleClaim(t *testing.T) {
	// 墙上只有 1 小时，却声称用了 2 小时
	_, err := ValidateBatch("a@b.com", []models.Task{entry(9, 10, 2)})
	assert.ErrorIs(t, err, ErrInvalidTimeUsed)

	_, err = ValidateBatch("a@b.com", []models.Task{{
		StartTime: at(9, 0),
		EndTime:   at(10, 0),
		TimeUsed:  -1,
		DateAdded: day,
	}})
	assert.ErrorIs(t, err, ErrInvalidTimeUsed)
}

func TestValidateBatchRejectsInvertedRange(t *testing.T) {
	bad := models.Task{
		StartTime: at(12, 0),
		EndTime:   at(10, 0),
		TimeUsed:  1,
		DateAdded: day,
	}
	_, err := ValidateBatch("a@b.com", []models.Task{bad})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestValidateBatchSortsAndStampsOwner(t *testing.T) {
	late := entry(14, 15, 1)
	early := entry(9, 10, 0.5)
	early.Email = "evil@b.com" // 客户端传的 owner 必须被覆盖

	out, err := ValidateBatch("a@b.com", []models.Task{late, early})
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, at(9, 0), out[0].StartTime)
	assert.Equal(t, at(14, 0), out[1].StartTime)
	for _, got := range out {
		assert.Equal(t, "a@b.com", got.Email)
	}
}

func TestValidateBatchAllOrNothing(t *testing.T) {
	good := entry(9, 10, 1)
	bad := entry(11, 12, 5)
	out, err := ValidateBatch("a@b.com", []models.Task{good, bad})
	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestValidateBatchSingleEntry(t *testing.T) {
	out, err := ValidateBatch("a@b.com", []models.Task{entry(9, 13, 3.5)})
	assert.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestValidateBatchTouchingRangesAllowed(t *testing.T) {
	// 首尾相接不算重叠
	out, err := ValidateBatch("a@b.com", []models.Task{entry(9, 10, 1), entry(10, 11, 1)})
	assert.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestValidateBatchNormalizesDateAdded(t *testing.T) {
	e := entry(9, 10, 1)
	e.DateAdded = time.Date(2026, 8, 28, 23, 45, 0, 0, time.FixedZone("UTC+8", 8*3600))
	out, err := ValidateBatch("a@b.com", []models.Task{e})
	assert.NoError(t, err)
	// UTC+8 的 23:45 是 UTC 的 15:45，归一化到 UTC 当天零点
	assert.Equal(t, day, out[0].DateAdded)
}
