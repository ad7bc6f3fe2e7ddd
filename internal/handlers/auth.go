package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/NCUHOME-Y/TimeLedger-BE/internal/models"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/config"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/constant"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/httpx"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/pkg/middleware"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/repository"
	"github.com/NCUHOME-Y/TimeLedger-BE/internal/sweep"
	"github.com/NCUHOME-Y/TimeLedger-BE/pkg/mypubliclib/util"
)

// Auth 账号相关接口：注册、登录、登出、注销账号
type Auth struct {
	cfg     *config.Config
	users   repository.UserRepository
	tasks   repository.TaskRepository
	sweeper *sweep.Sweeper
}

func NewAuth(cfg *config.Config, users repository.UserRepository, tasks repository.TaskRepository, sweeper *sweep.Sweeper) *Auth {
	return &Auth{cfg: cfg, users: users, tasks: tasks, sweeper: sweeper}
}

type signupReq struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Signup POST /api/signup
func (a *Auth) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		httpx.Fail(c, http.StatusBadRequest, constant.InvalidBody)
		return
	}
	if !util.IsValidEmail(req.Email) {
		httpx.Fail(c, http.StatusBadRequest, "Email"+constant.InvalidField)
		return
	}
	if !util.IsValidName(req.FirstName) || !util.IsValidName(req.LastName) {
		httpx.Fail(c, http.StatusBadRequest, constant.NameIsInvalid)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.cfg.BcryptCost)
	if err != nil {
		log.WithError(err).Error("Signup failed, hash password")
		httpx.Fail(c, http.StatusInternalServerError, constant.GenericError)
		return
	}

	user := &models.User{
		Email:       req.Email,
		Password:    string(hash),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CurrentTask: []primitive.ObjectID{},
	}

	if _, err := a.users.Insert(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			httpx.Fail(c, http.StatusBadRequest, constant.UserAlreadyExists)
			return
		}
		log.WithError(err).WithField("email", req.Email).Error("Signup failed, insert user")
		httpx.Fail(c, http.StatusInternalServerError, constant.GenericError)
		return
	}

	token, err := util.GenerateToken(a.cfg, req.Email)
	if err != nil {
		log.WithError(err).Error("Signup failed, sign token")
		httpx.Fail(c, http.StatusInternalServerError, constant.GenericError)
		return
	}
	httpx.OK(c, http.StatusCreated, constant.DataAdded, gin.H{"token": token})
}

type signinReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signin POST /api/signin
// 密码校验通过后先跑一遍过期清扫，再签发 Token
func (a *Auth) Signin(c *gin.Context) {
	var req signinReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		httpx.Fail(c, http.StatusBadRequest, constant.InvalidBody)
		return
	}
	if !util.IsValidEmail(req.Email) {
		httpx.Fail(c, http.StatusBadRequest, "Email"+constant.InvalidField)
		return
	}

	user, err := a.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httpx.Fail(c, http.StatusNotFound, constant.UserDoesntExist)
			return
		}
		log.WithError(err).WithField("email", req.Email).Error("Signin failed, find user")
		httpx.Fail(c, http.StatusInternalServerError, constant.GenericError)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		httpx.Fail(c, http.StatusUnauthorized, constant.AuthUnsuccessful)
		return
	}

	// 清扫是尽力而为的，内部吞掉所有错误，绝不把登录变成失败
	a.sweeper.Run(c.Request.Context(), user.Email)

	token, err := util.GenerateToken(a.cfg, user.Email)
	if err != nil {
		log.WithError(err).Error("Signin failed, sign token")
		httpx.Fail(c, http.StatusInternalServerError, constant.GenericError)
		return
	}
	httpx.OK(c, http.StatusOK, constant.AuthSuccessful, gin.H{"token": token})
}

// Signout GET /api/signout
// Token 是无状态的，登出只做确认，客户端丢弃 Token 即可
func (a *Auth) Signout(c *gin.Context) {
	httpx.OK(c, http.StatusOK, constant.SignoutSuccessful, nil)
}

// DeleteProfile DELETE /api/profile
// 删除账号并级联删除名下全部任务
func (a *Auth) DeleteProfile(c *gin.Context) {
	email := middleware.AuthedEmail(c)

	n, err := a.users.Delete(c.Request.Context(), email)
	if err != nil {
		log.WithError(err).WithField("email", email).Error("DeleteProfile failed, delete user")
		httpx.Fail(c, http.StatusInternalServerError, constant.GenericError)
		return
	}
	if n == 0 {
		httpx.Fail(c, http.StatusNotFound, constant.UserDoesntExist)
		return
	}

	if _, err := a.tasks.DeleteByEmail(c.Request.Context(), email); err != nil {
		log.WithError(err).WithField("email", email).Error("DeleteProfile failed, cascade tasks")
		httpx.Fail(c, http.StatusInternalServerError, constant.GenericError)
		return
	}
	httpx.OK(c, http.StatusOK, constant.DataDeleted, nil)
}
