package http

import (
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appful "github.com/jhoicas/fulfillment-api/internal/application/fulfillment"
	"github.com/jhoicas/fulfillment-api/internal/application/inventory"
	"github.com/jhoicas/fulfillment-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LocationUC    *inventory.LocationUseCase
	StockUC       *inventory.StockUseCase
	ReservationUC *inventory.ReservationUseCase
	TransferUC    *inventory.TransferUseCase
	Planner       *appful.Planner
}

// AppOptions configuración del servidor Fiber.
type AppOptions struct {
	Name        string
	DocsEnabled bool   // Swagger UI en /docs
	DocsFile    string // ruta al swagger.json
	Log         *logger.Logger
}

// NewApp crea la app Fiber con recover, /health, documentación opcional y las rutas de la API.
func NewApp(opts AppOptions, deps RouterDeps) *fiber.App {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(fiber.Map{"code": "HTTP", "message": fe.Message})
			}
			log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
			return writeError(c, err)
		},
	})
	app.Use(recover.New())

	if opts.DocsEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: opts.DocsFile,
			Path:     "docs",
			Title:    opts.Name,
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": opts.Name})
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	locations := api.Group("/stock-locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Patch("/:id", locationHandler.Update)

	items := api.Group("/stock-items")
	itemHandler := NewStockItemHandler(deps.StockUC)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)
	items.Delete("/:id", itemHandler.Delete)
	items.Post("/:id/adjust", itemHandler.Adjust)
	items.Post("/:id/reserve", itemHandler.Reserve)
	items.Post("/:id/release", itemHandler.Release)
	items.Post("/:id/ship", itemHandler.Ship)
	items.Get("/:id/movements", itemHandler.Movements)
	items.Get("/:id/verify", itemHandler.Verify)

	transfers := api.Group("/stock-transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/transfer", transferHandler.Transfer)
	transfers.Post("/:id/receive", transferHandler.Receive)
	transfers.Post("/:id/cancel", transferHandler.Cancel)
	transfers.Post("/:id/reject", transferHandler.Reject)

	fulfillment := api.Group("/fulfillment")
	fulfillmentHandler := NewFulfillmentHandler(deps.Planner)
	fulfillment.Post("/plan", fulfillmentHandler.Plan)
	fulfillment.Post("/allocations", fulfillmentHandler.Allocations)
	fulfillment.Get("/strategies", fulfillmentHandler.Strategies)

	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.Planner, deps.ReservationUC)
	orders.Post("/:id/reserve", orderHandler.Reserve)
	orders.Post("/:id/release", orderHandler.Release)
	orders.Post("/:id/ship", orderHandler.Ship)
}
