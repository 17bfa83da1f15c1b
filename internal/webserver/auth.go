package webserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/cran-montage/cranweb/internal/app"
	"github.com/cran-montage/cranweb/internal/domain"
	"github.com/cran-montage/cranweb/pkg/common"
)

const (
	tokenCookieName = "cranweb_token"
	sessionName     = "cranweb_session"
	tokenTTL        = 24 * time.Hour
)

type loginPayload struct {
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func loginSkipper(c echo.Context) bool {
	return c.Path() == "/api/admin/login"
}

func (ws *WebServer) registerAuthRoutes() {
	ws.admin.POST("/login", ws.handleLogin)
	ws.admin.POST("/logout", ws.handleLogout)
	ws.admin.GET("/session", ws.handleSession)
}

// handleLogin verifies operator credentials, issues the API token and
// the browser session cookie, and announces the session change.
func (ws *WebServer) handleLogin(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", nil)
	}

	ident := strings.TrimSpace(strings.ToLower(payload.Email))
	if ident == "" {
		ident = strings.TrimSpace(payload.Username)
	}
	if ident == "" || payload.Password == "" {
		return Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Email and password are required", nil)
	}

	var opr domain.SysOpr
	err := GetDB(c).
		Where("(username = ? or email = ?) and status = ?", ident, ident, common.ENABLED).
		First(&opr).Error
	if err != nil {
		return Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password", nil)
	}

	hashed := common.Sha256HashWithSalt(payload.Password, common.GetSecretSalt())
	if hashed != opr.Password {
		zap.L().Warn("login rejected", zap.String("operator", ident), zap.String("ip", c.RealIP()))
		return Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password", nil)
	}

	tokenStr, err := ws.issueToken(&opr)
	if err != nil {
		zap.L().Error("token signing failed", zap.Error(err))
		return Fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", nil)
	}

	sess, _ := session.Get(sessionName, c)
	sess.Options = &sessions.Options{Path: "/", MaxAge: int(tokenTTL.Seconds()), HttpOnly: true}
	sess.Values["username"] = opr.Username
	sess.Values["level"] = opr.Level
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		zap.L().Warn("session save failed", zap.Error(err))
	}

	c.SetCookie(&http.Cookie{
		Name:     tokenCookieName,
		Value:    tokenStr,
		Path:     "/",
		Expires:  time.Now().Add(tokenTTL),
		HttpOnly: true,
	})

	ws.appctx.Bus().Publish(app.SessionChangeTopic, app.SessionEvent{
		Username: opr.Username,
		Event:    "login",
		At:       time.Now(),
	})

	GetDB(c).Create(&domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   opr.Username,
		OprIp:     c.RealIP(),
		OptAction: "login",
		OptDesc:   "operator signed in",
		OptTime:   time.Now(),
	})

	return OK(c, echo.Map{
		"token": tokenStr,
		"operator": echo.Map{
			"id":       opr.ID,
			"username": opr.Username,
			"realname": opr.Realname,
			"email":    opr.Email,
			"level":    opr.Level,
		},
	})
}

func (ws *WebServer) handleLogout(c echo.Context) error {
	username := OprUsername(c)

	sess, _ := session.Get(sessionName, c)
	sess.Options = &sessions.Options{Path: "/", MaxAge: -1}
	_ = sess.Save(c.Request(), c.Response())

	c.SetCookie(&http.Cookie{Name: tokenCookieName, Value: "", Path: "/", MaxAge: -1})

	ws.appctx.Bus().Publish(app.SessionChangeTopic, app.SessionEvent{
		Username: username,
		Event:    "logout",
		At:       time.Now(),
	})

	return OK(c, echo.Map{"logged_out": true})
}

// handleSession returns the current operator so the admin shell can
// resolve its unknown -> checking -> authenticated state on load.
func (ws *WebServer) handleSession(c echo.Context) error {
	username := OprUsername(c)
	if username == "" {
		return Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "No active session", nil)
	}
	var opr domain.SysOpr
	if err := GetDB(c).Where("username = ?", username).First(&opr).Error; err != nil {
		return Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Operator no longer exists", nil)
	}
	return OK(c, echo.Map{
		"id":         opr.ID,
		"username":   opr.Username,
		"realname":   opr.Realname,
		"email":      opr.Email,
		"level":      opr.Level,
		"last_login": opr.LastLogin,
	})
}

func (ws *WebServer) issueToken(opr *domain.SysOpr) (string, error) {
	claims := jwt.MapClaims{
		"uid": opr.ID,
		"usr": opr.Username,
		"lvl": opr.Level,
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(ws.appctx.Config().Web.Secret))
}

// parseToken validates the bearer token and hands the parsed token to
// echo-jwt for context storage.
func (ws *WebServer) parseToken(c echo.Context, auth string) (interface{}, error) {
	token, err := jwt.Parse(auth, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(ws.appctx.Config().Web.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return token, nil
}

// OprUsername extracts the authenticated operator's username from the
// validated token, or "" outside the auth gate.
func OprUsername(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	usr, _ := claims["usr"].(string)
	return usr
}
