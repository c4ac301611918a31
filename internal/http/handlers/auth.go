package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp/internal/services"
)

type signupRequest struct {
	Fullname string `json:"fullname" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type signinRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// Signup POST /api/auth/signup
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.auth(c).Signup(c.Request.Context(), services.SignupInput{
		Fullname: req.Fullname,
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user.ToPublic()})
}

// Signin POST /api/auth/signin. The handle may be a username or an email.
func (h *Handler) Signin(c *gin.Context) {
	var req signinRequest
	if !bindJSON(c, &req) {
		return
	}
	handle := req.Username
	if handle == "" {
		handle = req.Email
	}
	res, err := h.auth(c).Signin(c.Request.Context(), handle, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Login successful",
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"user":       res.User,
	})
}

// Me GET /api/auth/me
func (h *Handler) Me(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
