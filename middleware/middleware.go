package middleware

import (
	"context"
	"net/http"
	"strings"

	"digi-agency/microservices/graphics-service/logging"
	"digi-agency/microservices/graphics-service/models"
	"digi-agency/microservices/graphics-service/utils"
)

type contextKey string

const sessionContextKey contextKey = "sessionContext"

// SessionChecker proverava da li je nalog prijavljenog korisnika i dalje važeći.
type SessionChecker interface {
	CheckSession(session models.SessionContext) error
}

// JWTAuthMiddleware validira Bearer token, gradi SessionContext iz claim-ova i
// odbija zahtev ako je zapis zaposlenog u međuvremenu deaktiviran ili obrisan.
func JWTAuthMiddleware(checker SessionChecker, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logging.Logger.Warnf("Event ID: JWT_AUTH_MISSING_HEADER, Description: Authorization header missing for request to %s %s", r.Method, r.URL.Path)
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenStr)
		if err != nil {
			logging.Logger.Warnf("Event ID: JWT_AUTH_INVALID_TOKEN, Description: Invalid token provided for request to %s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		session := models.SessionContext{
			Name:  claims.Name,
			Email: claims.Email,
			Role:  claims.Role,
		}

		// Ako zaposleni više nije aktivan, sesija se ruši u celini -
		// klijent na 401 briše lokalno stanje i vraća se na login.
		if err := checker.CheckSession(session); err != nil {
			logging.Logger.Warnf("Event ID: SESSION_INVALIDATED, Description: Session for %s rejected: %v", session.Email, err)
			http.Error(w, "Session is no longer valid", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromRequest vraća SessionContext postavljen u middleware-u.
func SessionFromRequest(r *http.Request) (models.SessionContext, bool) {
	session, ok := r.Context().Value(sessionContextKey).(models.SessionContext)
	return session, ok
}
