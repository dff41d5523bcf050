package middleware

import (
	"coachnet/internal/dataset"

	"github.com/labstack/echo/v4"
)

// App holds the process-wide resources handlers read: the immutable dataset
// loaded at startup. Nothing in here is mutated after Init.
type App struct {
	Dataset *dataset.Dataset
}

// AppContext wraps the echo context with the application resources.
type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware attaches the dataset to every request context.
func AppContextMiddleware(ds *dataset.Dataset) echo.MiddlewareFunc {
	app := &App{Dataset: ds}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
