package server

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/storage"
)

const adminCookie = "admin_token"

// initAdminToken creates the per-process session token and IP hashing salt.
func (s *Server) initAdminToken() {
	s.adminToken = generateToken()
	s.hashingSalt = generateToken()

	if gin.Mode() == gin.DebugMode {
		s.log.Info("admin token (dev only): %s", s.adminToken)
		if s.cfg.Admin.Password == "admin123" {
			s.log.Warn("using default admin password; set ADMIN_PASSWORD")
		}
	}
}

func generateToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate token: " + err.Error())
	}
	return hex.EncodeToString(b)
}

func (s *Server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Admin.Password)) == 1
	return userOK && passOK && s.cfg.Admin.Username != ""
}

func (s *Server) setupAdminRoutes() {
	r := s.engine

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if !s.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			s.log.Warn("failed admin login attempt from %s", s.hashIP(c.ClientIP()))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}
		// Secure cookie (24 hours)
		c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", false, true)
		s.log.Info("admin login from %s", s.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuthMiddleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		if s.db == nil {
			s.renderAdminError(c, "Statistics are disabled: no database configured")
			return
		}
		stats, err := s.db.Stats(c.Request.Context())
		if err != nil {
			s.log.Error("loading admin stats: %v", err)
			s.renderAdminError(c, "Failed to load statistics")
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"title": "Dashboard",
			"stats": stats,
		})
	})

	admin.GET("/visitors", func(c *gin.Context) {
		if s.db == nil {
			s.renderAdminError(c, "Statistics are disabled: no database configured")
			return
		}
		visitors, err := s.db.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			s.log.Error("loading visitors: %v", err)
			s.renderAdminError(c, "Failed to load visitors")
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"title":    "Visitors",
			"visitors": visitors,
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		if s.db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no database configured"})
			return
		}
		stats, err := s.db.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		if s.db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no database configured"})
			return
		}
		stats, err := s.db.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.log.Info("admin stats exported by %s", s.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		if s.db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no database configured"})
			return
		}
		removed, err := s.db.CleanupVisitors(c.Request.Context(), storage.VisitorRetention)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": removed})
	})
}

func (s *Server) renderAdminError(c *gin.Context, msg string) {
	c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
		"title": "Error",
		"error": msg,
	})
}
