package middlewares

import (
	"log"
	"net/http"

	"github.com/Kariqs/amexan-store/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "amexan_session"
	sessionKey    = "session"
)

// LoadSession attaches the visitor's session to the request, issuing a new
// cookie for first-time visitors.
func LoadSession(store session.Store, maxAgeSeconds int, secure bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := ctx.Cookie(SessionCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		ctx.SetSameSite(http.SameSiteLaxMode)
		ctx.SetCookie(SessionCookie, id, maxAgeSeconds, "/", "", secure, true)

		s, err := store.Load(ctx.Request.Context(), id)
		if err != nil {
			log.Println("Session load error:", err)
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		ctx.Set(sessionKey, s)
		ctx.Next()
	}
}

func CurrentSession(ctx *gin.Context) *session.Session {
	s, _ := ctx.MustGet(sessionKey).(*session.Session)
	return s
}
