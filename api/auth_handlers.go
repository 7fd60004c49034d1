package api

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/WashLinkHQ/washlink-go/config"
	"github.com/WashLinkHQ/washlink-go/store"
	"github.com/WashLinkHQ/washlink-go/utils"
)

const (
	adminCookie = "admin_auth"
	userCookie  = "user_auth"

	roleAdmin      = "admin"
	roleSuperAdmin = "super-admin"
	roleUser       = "user"
)

// AdminLoginHandler authenticates laundry admins and the platform operator.
// The laundry admin password comes from the tenant config; the super-admin
// password is platform-wide.
func AdminLoginHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var loginReq struct {
		Email    string `json:"email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var role, subject string

	superPassword := os.Getenv("SUPER_ADMIN_PASSWORD")
	if superPassword != "" && loginReq.Password == superPassword {
		role = roleSuperAdmin
		subject = "platform"
	} else if ctx.Config.AdminPassword != "" && loginReq.Password == ctx.Config.AdminPassword {
		s := store.New(ctx)
		laundry, err := s.GetLaundryByAdminEmail(loginReq.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		role = roleAdmin
		subject = laundry.ID
	} else {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(ctx.TenantID, subject, role, ctx.Config.JWTSecret, config.JWTLifetime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	c.SetCookie(adminCookie, token, int(config.JWTLifetime.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"role":   role,
		"token":  token,
	})
}

// UserLoginHandler authenticates customers by email and password.
func UserLoginHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	s := store.New(ctx)
	customer, hash, err := s.GetCustomerByEmail(loginReq.Email)
	if err != nil || hash == "" || !utils.CheckPassword(loginReq.Password, hash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(ctx.TenantID, customer.ID, roleUser, ctx.Config.JWTSecret, config.JWTLifetime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	c.SetCookie(userCookie, token, int(config.JWTLifetime.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"token":  token,
		"user":   customer,
	})
}

// UserRegisterHandler creates a customer account.
func UserRegisterHandler(c *gin.Context) {
	ctx, err := getTenantContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	s := store.New(ctx)
	customer, err := s.CreateCustomer(req.Name, req.Email, req.Phone, hash)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	if err := s.RecordActivity(store.ActivityCustomerRegistered,
		"Customer "+customer.Email+" registered", "",
		store.ActivityRef{CustomerID: customer.ID}); err != nil {
		log.Printf("ERROR: activity for customer %s: %v", customer.ID, err)
	}

	token, err := utils.GenerateJWT(ctx.TenantID, customer.ID, roleUser, ctx.Config.JWTSecret, config.JWTLifetime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	c.SetCookie(userCookie, token, int(config.JWTLifetime.Seconds()), "/", "", false, true)
	c.JSON(http.StatusCreated, gin.H{
		"status": "ok",
		"token":  token,
		"user":   customer,
	})
}

// LogoutHandler clears both session cookies.
func LogoutHandler(c *gin.Context) {
	c.SetCookie(adminCookie, "", -1, "/", "", false, true)
	c.SetCookie(userCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
