package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NCUHOME-Y/TimeLedger-BE/internal/insight"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/config"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/constant"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/httpx"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/middleware"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/repository"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/sweep"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/task"
	"github.com/NCUHOME-Y/TimeLedger-BE/pkg/mypubliclib/util"
)

// Repos 三个集合的存储实现，main 里接 mongo，测试里接内存实现
type Repos struct {
	Users    repository.UserRepository
	Tasks    repository.TaskRepository
	Insights repository.InsightRepository
}

// NewRouter 组装全部路由和中间件
func NewRouter(cfg *config.Config, repos Repos) *gin.Engine {
	reconciler := task.NewReconciler(repos.Tasks, repos.Users)
	engine := insight.NewEngine(repos.Insights)
	sweeper := sweep.NewSweeper(repos.Tasks, repos.Users, engine)

	auth := NewAuth(cfg, repos.Users, repos.Tasks, sweeper)
	taskH := NewTask(repos.Tasks, reconciler)
	insightH := NewInsight(repos.Insights)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(util.Cors(cfg.AllowOrigins))
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimit(50, 100))

	api := r.Group("/api")
	api.GET("/", func(c *gin.Context) {
		httpx.OK(c, http.StatusOK, constant.APIStatusOK, nil)
	})
	api.POST("/signup", auth.Signup)
	api.POST("/signin", auth.Signin)

	authed := api.Group("", middleware.JWTAuth(cfg))
	authed.GET("/signout", auth.Signout)
	authed.DELETE("/profile", auth.DeleteProfile)
	authed.POST("/update-task", taskH.UpdateTask)
	authed.POST("/current-task", taskH.CurrentTask)
	authed.POST("/get-insight", insightH.GetInsight)
	authed.POST("/delete-insight", insightH.DeleteInsight)

	r.NoRoute(func(c *gin.Context) {
		httpx.Fail(c, http.StatusNotFound, constant.InvalidPath)
	})
	return r
}
