package middleware

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"paperatlas/pkg/store"
)

// App carries the shared application dependencies every handler needs:
// the database pool, the queue channel for publishing jobs, and the
// document storage built over the pool. Handlers reach it through the
// AppContext type assertion.
type App struct {
	DBConn  *pgxpool.Pool
	Queue   *amqp091.Channel
	Storage store.DocumentStorage
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(
	db *pgxpool.Pool,
	queue *amqp091.Channel,
	storage store.DocumentStorage,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			app := &App{
				DBConn:  db,
				Queue:   queue,
				Storage: storage,
			}
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
