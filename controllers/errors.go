package controllers

import (
	"context"
	"errors"
	"net/http"

	"slidecraft/db"
	"slidecraft/internal/generation"
	"slidecraft/internal/logger"
	"slidecraft/middlewares"
	"slidecraft/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondError maps service and store errors onto the API's
// {"error": kind, "message": text} body.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	var genErr *generation.Error
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Resource not found"})
	case errors.Is(err, db.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": "Resource already exists"})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_input", "message": err.Error()})
	case errors.Is(err, services.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate_limited", "message": err.Error()})
	case errors.As(err, &genErr):
		log.Warn("slide generation failed", "kind", genErr.Kind, "error", err, "snippet", genErr.Snippet)
		c.JSON(http.StatusBadGateway, gin.H{"error": string(genErr.Kind), "message": genErr.Message})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "timeout", "message": "Request timed out"})
	case errors.Is(err, context.Canceled):
		// Client went away; nobody is listening for the body.
		c.Status(499)
	default:
		log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "Internal server error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_input", "message": message})
}

// currentUser reads the authenticated user id set by AuthMiddleware.
func currentUser(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString(middlewares.ContextUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid user in token"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		badRequest(c, "Invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}
