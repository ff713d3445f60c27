package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"slidecraft/db"
	"slidecraft/internal/logger"
	"slidecraft/models"
	"slidecraft/structs"
	"slidecraft/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type AuthController struct {
	users UserStore
	log   *logger.Logger
}

func NewAuthController(users UserStore, log *logger.Logger) *AuthController {
	return &AuthController{users: users, log: log}
}

func (a *AuthController) SignUp(c *gin.Context) {
	var request structs.SignUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, err.Error())
		return
	}

	hash, err := utils.HashPassword(request.Password)
	if err != nil {
		respondError(c, a.log, err)
		return
	}
	name := strings.TrimSpace(request.Name)
	if name == "" {
		name = utils.ExtractNameFromEmail(request.Email)
	}

	user := &models.User{Email: request.Email, DisplayName: name, Password: hash}
	if err := a.users.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": "User already exists"})
			return
		}
		respondError(c, a.log, err)
		return
	}

	token, err := utils.GenerateJWTToken(user.ID.Hex(), user.Email)
	if err != nil {
		respondError(c, a.log, err)
		return
	}
	a.log.Info("user signed up", "user", user.ID.Hex())
	c.JSON(http.StatusCreated, gin.H{"message": "Sign-up successful", "accessToken": token, "user": user})
}

func (a *AuthController) Login(c *gin.Context) {
	var request structs.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badRequest(c, "Check email and password format")
		return
	}

	user, err := a.users.FindUserByEmail(c.Request.Context(), request.Email)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		respondError(c, a.log, err)
		return
	}
	if user == nil || !utils.CheckPasswordHash(request.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateJWTToken(user.ID.Hex(), user.Email)
	if err != nil {
		respondError(c, a.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sign-in successful", "accessToken": token, "user": user})
}

func (a *AuthController) Me(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := a.users.FindUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, a.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
