package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

const wildcard = "*"

// CORSConfig represents CORS configuration
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           int
}

// DefaultCORSConfig allows every origin, method and header and caches preflights for an hour
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:     []string{wildcard},
		AllowMethods:     []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{wildcard},
		ExposeHeaders:    []string{wildcard},
		AllowCredentials: true,
		MaxAge:           3600,
	}
}

// CORS returns a CORS middleware with the given configuration
func CORS(config CORSConfig) gin.HandlerFunc {
	allowAllOrigins := lo.Contains(config.AllowOrigins, wildcard)
	allowAllHeaders := lo.Contains(config.AllowHeaders, wildcard)
	methods := strings.Join(config.AllowMethods, ", ")
	maxAge := strconv.Itoa(config.MaxAge)

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		switch {
		case allowAllOrigins && config.AllowCredentials && origin != "":
			// "*" is not honoured by browsers on credentialed requests
			c.Header("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Add("Vary", "Origin")
		case allowAllOrigins:
			c.Header("Access-Control-Allow-Origin", wildcard)
		case lo.Contains(config.AllowOrigins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Add("Vary", "Origin")
		}

		if config.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		if len(config.ExposeHeaders) > 0 {
			c.Header("Access-Control-Expose-Headers", strings.Join(config.ExposeHeaders, ", "))
		}

		// Handle preflight requests
		if c.Request.Method == http.MethodOptions && c.Request.Header.Get("Access-Control-Request-Method") != "" {
			if methods != "" {
				c.Header("Access-Control-Allow-Methods", methods)
			}

			requested := c.Request.Header.Get("Access-Control-Request-Headers")
			switch {
			case allowAllHeaders && requested != "":
				c.Header("Access-Control-Allow-Headers", requested)
			case !allowAllHeaders && len(config.AllowHeaders) > 0:
				c.Header("Access-Control-Allow-Headers", strings.Join(config.AllowHeaders, ", "))
			}

			if config.MaxAge > 0 {
				c.Header("Access-Control-Max-Age", maxAge)
			}

			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
