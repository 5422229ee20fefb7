package routes

import (
	"time"

	"github.com/Kariqs/amexan-store/controllers"
	"github.com/Kariqs/amexan-store/middlewares"
	"github.com/Kariqs/amexan-store/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Options struct {
	Handler     *controllers.Handler
	Sessions    session.Store
	SessionTTL  time.Duration
	JWTSecret   string
	CORSOrigins []string
	Gatherer    prometheus.Gatherer

	SecureCookie bool
}

func NewServer(opts Options) *gin.Engine {
	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	sessions := middlewares.LoadSession(opts.Sessions, int(opts.SessionTTL.Seconds()), opts.SecureCookie)

	DefaultRoutes(server, opts.Gatherer)
	AuthRoutes(server, opts.Handler)
	ProductRoutes(server, opts.Handler, opts.JWTSecret)
	CartRoutes(server, opts.Handler, sessions)
	CheckoutRoutes(server, opts.Handler, sessions, opts.JWTSecret)
	OrderRoutes(server, opts.Handler, opts.JWTSecret)
	return server
}
