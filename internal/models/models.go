package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 注册用户，email 唯一
// CurrentTask 是当天任务的引用缓存，由 reconciler 和 sweep 重建，不单独可信
type User struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"-"`
	Email       string               `bson:"email" json:"email"`
	Password    string               `bson:"password" json:"-"`
	FirstName   string               `bson:"firstName" json:"firstName"`
	LastName    string               `bson:"lastName" json:"lastName"`
	CurrentTask []primitive.ObjectID `bson:"currentTask" json:"currentTask"`
}

// Task 一条时间记录：起止时间加自报的实际用时（小时）
type Task struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	StartTime time.Time          `bson:"startTime" json:"startTime"`
	EndTime   time.Time          `bson:"endTime" json:"endTime"`
	TimeUsed  float64            `bson:"timeUsed" json:"timeUsed"`
	DateAdded time.Time          `bson:"dateAdded" json:"dateAdded"`
}

// SpanHours 起止时间之间的墙上时长（小时）
func (t Task) SpanHours() float64 {
	return float64(t.EndTime.Sub(t.StartTime).Milliseconds()) / 3600000
}

// Insight 每人每天一条的汇总记录
type Insight struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Email           string             `bson:"email" json:"email"`
	DateAdded       time.Time          `bson:"dateAdded" json:"dateAdded"`
	TotalTimeLogged float64            `bson:"totalTimeLogged" json:"totalTimeLogged"`
	TimeUsed        float64            `bson:"timeUsed" json:"timeUsed"`
	PercentageUsed  float64            `bson:"percentageUsed" json:"percentageUsed"`
	Comment         string             `bson:"comment" json:"comment"`
}

// CivilDay 归一化到 UTC 零点，日期比较统一按 UTC 自然日
func CivilDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
