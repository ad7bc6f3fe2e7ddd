package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/NCUHOME-Y/TimeLedger-BE/internal/models"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/constant"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/httpx"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/middleware"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/repository"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/task"
	"github.com/NCUHOME-Y/TimeLedger-BE/pkg/mypubliclib/util"
)

// Task 任务相关接口：整批替换当天任务、查询当前任务
type Task struct {
	tasks      repository.TaskRepository
	reconciler *task.Reconciler
}

func NewTask(tasks repository.TaskRepository, reconciler *task.Reconciler) *Task {
	return &Task{tasks: tasks, reconciler: reconciler}
}

type taskItem struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	TimeUsed  float64   `json:"timeUsed"`
	DateAdded time.Time `json:"dateAdded"`
}

type updateTaskReq struct {
	Email    string     `json:"email"`
	TaskList []taskItem `json:"taskList"`
}

// requireOwner 请求体里的 email 必须和 Token 里的身份一致
func requireOwner(c *gin.Context, email string) (string, bool) {
	owner := middleware.AuthedEmail(c)
	if !util.IsValidEmail(email) || email != owner {
		httpx.Fail(c, http.StatusUnauthorized, "Email"+constant.InvalidField)
		return "", false
	}
	return owner, true
}

// UpdateTask POST /api/update-task
// 校验整批任务，通过后整体替换该用户存量任务
func (h *Task) UpdateTask(c *gin.Context) {
	var req updateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, constant.InvalidBody)
		return
	}
	owner, ok := requireOwner(c, req.Email)
	if !ok {
		return
	}

	list := make([]models.Task, 0, len(req.TaskList))
	for _, it := range req.TaskList {
		list = append(list, models.Task{
			StartTime: it.StartTime,
			EndTime:   it.EndTime,
			TimeUsed:  it.TimeUsed,
			DateAdded: it.DateAdded,
		})
	}

	validated, err := task.ValidateBatch(owner, list)
	if err != nil {
		if task.IsValidationError(err) {
			httpx.Fail(c, http.StatusBadRequest, err.Error())
			return
		}
		httpx.Fail(c, http.StatusInternalServerError, constant.GenericError)
		return
	}

	saved, err := h.reconciler.Replace(c.Request.Context(), owner, validated)
	if err != nil {
		log.WithError(err).WithField("email", owner).Error("UpdateTask failed, replace batch")
		httpx.Fail(c, http.StatusInternalServerError, constant.GenericError)
		return
	}
	httpx.OK(c, http.StatusOK, constant.DataUpdated, saved)
}

type currentTaskReq struct {
	Email string `json:"email"`
}

// CurrentTask POST /api/current-task
func (h *Task) CurrentTask(c *gin.Context) {
	var req currentTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, constant.InvalidBody)
		return
	}
	owner, ok := requireOwner(c, req.Email)
	if !ok {
		return
	}

	tasks, err := h.tasks.FindByEmail(c.Request.Context(), owner)
	if err != nil {
		log.WithError(err).WithField("email", owner).Error("CurrentTask failed, list tasks")
		httpx.Fail(c, http.StatusInternalServerError, constant.GenericError)
		return
	}
	httpx.OK(c, http.StatusOK, constant.DataRetrieved, tasks)
}
