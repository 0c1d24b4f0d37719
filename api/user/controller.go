package user

import (
	"net/http"

	"dddkit/api/ctxutil"
	"dddkit/api/response"
	userapp "dddkit/application/user"

	"github.com/gin-gonic/gin"
)

// Controller User controller
type Controller struct {
	userService *userapp.ApplicationService
}

// NewController Create user controller
func NewController(userService *userapp.ApplicationService) *Controller {
	return &Controller{
		userService: userService,
	}
}

// RegisterRoutes Register user routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	userGroup := router.Group("/users")
	{
		userGroup.POST("", c.CreateUser)
		userGroup.GET("/:id", c.GetUser)
		userGroup.PUT("/:id/status", c.UpdateUserStatus)
	}
}

// CreateUser Create user
func (c *Controller) CreateUser(ctx *gin.Context) {
	var req userapp.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	user, err := c.userService.CreateUser(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, user, "User created successfully")
}

// GetUser Get user information
func (c *Controller) GetUser(ctx *gin.Context) {
	userID := ctx.Param("id")
	if userID == "" {
		response.HandleError(ctx, nil, "User ID is required", http.StatusBadRequest)
		return
	}

	user, err := c.userService.GetUser(ctxutil.WithRequestID(ctx), userID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, user, "User retrieved successfully")
}

// UpdateUserStatus Update user status
func (c *Controller) UpdateUserStatus(ctx *gin.Context) {
	userID := ctx.Param("id")
	if userID == "" {
		response.HandleError(ctx, nil, "User ID is required", http.StatusBadRequest)
		return
	}

	var req userapp.UpdateUserStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	if err := c.userService.UpdateUserStatus(ctxutil.WithRequestID(ctx), userID, req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "User status updated successfully")
}
