package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/cran-montage/cranweb/internal/app"
)

// WebServer hosts both the public content API and the authenticated
// admin API on one echo instance.
type WebServer struct {
	root   *echo.Echo
	pub    *echo.Group
	admin  *echo.Group
	appctx app.AppContext
}

var server *WebServer

// Init builds the package server instance. Route registration helpers
// (PubGET, ApiGET, ...) panic before Init is called.
func Init(appctx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(appctx.Config().Web.Secret))))
	e.Use(zapLoggerMiddleware())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(dbContextKey, appctx.DB())
			return next(c)
		}
	})

	// stored media is served straight off the bucket directory
	if appctx.Storage() != nil {
		e.Static("/storage", appctx.Storage().Root())
	}

	ws := &WebServer{
		root:   e,
		appctx: appctx,
	}
	ws.pub = e.Group("/api")
	ws.admin = e.Group("/api/admin", echojwt.WithConfig(echojwt.Config{
		Skipper:        loginSkipper,
		ParseTokenFunc: ws.parseToken,
		TokenLookup:    "header:Authorization:Bearer ,cookie:" + tokenCookieName,
		ErrorHandler: func(c echo.Context, err error) error {
			return Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		},
	}))

	ws.registerAuthRoutes()

	server = ws
	return ws
}

// Instance returns the initialized package server (tests use it to
// reach the echo engine directly).
func Instance() *WebServer {
	return server
}

// Echo exposes the underlying engine for httptest.
func (ws *WebServer) Echo() *echo.Echo {
	return ws.root
}

// Listen starts serving on the configured address until the listener
// fails or Shutdown is called.
func Listen() error {
	cfg := server.appctx.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("web server listening on %s", addr)
	return server.root.Start(addr)
}

// Shutdown drains in-flight requests before stopping.
func Shutdown(ctx context.Context) error {
	if server == nil {
		return nil
	}
	return server.root.Shutdown(ctx)
}

func zapLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			req := c.Request()
			res := c.Response()
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", res.Status),
				zap.Duration("took", time.Since(start)),
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}
			zap.L().Debug("http request", fields...)
			return err
		}
	}
}

// PubGET registers an unauthenticated API route.
func PubGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.pub.GET(path, h, m...)
}

// PubPOST registers an unauthenticated API route.
func PubPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.pub.POST(path, h, m...)
}

// ApiGET registers an admin route behind the auth gate.
func ApiGET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.admin.GET(path, h, m...)
}

// ApiPOST registers an admin route behind the auth gate.
func ApiPOST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.admin.POST(path, h, m...)
}

// ApiPUT registers an admin route behind the auth gate.
func ApiPUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.admin.PUT(path, h, m...)
}

// ApiDELETE registers an admin route behind the auth gate.
func ApiDELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) {
	server.admin.DELETE(path, h, m...)
}
