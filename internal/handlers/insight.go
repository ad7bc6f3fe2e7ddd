package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/constant"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/httpx"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/repository"
)

// Insight 洞察相关接口：查询、按天删除
type Insight struct {
	insights repository.InsightRepository
}

func NewInsight(insights repository.InsightRepository) *Insight {
	return &Insight{insights: insights}
}

type getInsightReq struct {
	Email string `json:"email"`
}

// GetInsight POST /api/get-insight
func (h *Insight) GetInsight(c *gin.Context) {
	var req getInsightReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, constant.InvalidBody)
		return
	}
	owner, ok := requireOwner(c, req.Email)
	if !ok {
		return
	}

	insights, err := h.insights.FindByEmail(c.Request.Context(), owner)
	if err != nil {
		log.WithError(err).WithField("email", owner).Error("GetInsight failed, list insights")
		httpx.Fail(c, http.StatusInternalServerError, constant.GenericError)
		return
	}
	httpx.OK(c, http.StatusOK, constant.DataRetrieved, insights)
}

type deleteInsightReq struct {
	Email     string `json:"email"`
	DateAdded string `json:"dateAdded"`
}

// DeleteInsight POST /api/delete-insight
// 按 (email, 自然日) 删除一条洞察
func (h *Insight) DeleteInsight(c *gin.Context) {
	var req deleteInsightReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Fail(c, http.StatusBadRequest, constant.InvalidBody)
		return
	}
	owner, ok := requireOwner(c, req.Email)
	if !ok {
		return
	}
	if req.DateAdded == "" {
		httpx.Fail(c, http.StatusBadRequest, constant.RequiredFieldBlank)
		return
	}

	day, err := parseDay(req.DateAdded)
	if err != nil {
		httpx.Fail(c, http.StatusBadRequest, "DateAdded"+constant.InvalidField)
		return
	}

	n, err := h.insights.DeleteByDay(c.Request.Context(), owner, day)
	if err != nil {
		log.WithError(err).WithField("email", owner).Error("DeleteInsight failed")
		httpx.Fail(c, http.StatusInternalServerError, constant.GenericError)
		return
	}
	if n == 0 {
		httpx.Fail(c, http.StatusNotFound, constant.NoDataFound)
		return
	}
	httpx.OK(c, http.StatusOK, constant.DataDeleted, nil)
}

// parseDay 接受 RFC3339 时间或 2006-01-02 日期
func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
