package router

import (
	"time"

	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/config"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/handler"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/middleware"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/model"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/repository"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/service"
	"github.com/Magus-Technologies/ferreteria-backend-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	compraRepo := repository.NewCompraRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	productoAlmacenRepo := repository.NewProductoPorAlmacenRepository(db)
	metodoPagoRepo := repository.NewMetodoDePagoRepository(db)
	dineroRepo := repository.NewDineroRepository(db)
	unidadRepo := repository.NewUnidadRepository(db)
	ajusteRepo := repository.NewAjusteStockRepository(db)
	prestamoRepo := repository.NewPrestamoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	monedaBase := model.Moneda(cfg.MonedaBase)
	conciliador := service.NewConciliador(metodoPagoRepo, dineroRepo)
	stockSvc := service.NewStockService(productoAlmacenRepo, dispatcher)

	compraSvc := service.NewCompraService(compraRepo, unidadRepo, dineroRepo, conciliador, stockSvc, monedaBase)
	ventaSvc := service.NewVentaService(ventaRepo, unidadRepo, conciliador, stockSvc, monedaBase)
	ajusteSvc := service.NewAjusteStockService(ajusteRepo, unidadRepo, stockSvc)
	prestamoSvc := service.NewPrestamoService(prestamoRepo, unidadRepo, stockSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	comprasH := handler.NewComprasHandler(compraSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	ajustesH := handler.NewAjustesHandler(ajusteSvc)
	prestamosH := handler.NewPrestamosHandler(prestamoSvc)
	movimientosH := handler.NewMovimientosHandler(productoAlmacenRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		v1.POST("/compras", comprasH.RegistrarCompra)
		v1.GET("/compras", comprasH.ListarCompras)
		v1.GET("/compras/:id", comprasH.ObtenerCompra)
		v1.PUT("/compras/:id", comprasH.ActualizarCompra)
		v1.DELETE("/compras/:id", comprasH.AnularCompra)
		v1.POST("/compras/:id/recepciones", comprasH.RecepcionarCompra)

		v1.POST("/ventas", ventasH.RegistrarVenta)
		v1.GET("/ventas", ventasH.ListarVentas)
		v1.GET("/ventas/:id", ventasH.ObtenerVenta)
		v1.PUT("/ventas/:id", ventasH.ActualizarVenta)
		v1.DELETE("/ventas/:id", ventasH.AnularVenta)
		v1.POST("/ventas/:id/entregas", ventasH.EntregarVenta)

		v1.POST("/ajustes-stock", ajustesH.RegistrarAjuste)
		v1.GET("/ajustes-stock", ajustesH.ListarAjustes)
		v1.GET("/ajustes-stock/:id", ajustesH.ObtenerAjuste)

		v1.POST("/prestamos", prestamosH.RegistrarPrestamo)
		v1.GET("/prestamos", prestamosH.ListarPrestamos)
		v1.GET("/prestamos/:id", prestamosH.ObtenerPrestamo)
		v1.POST("/prestamos/:id/devolucion", prestamosH.DevolverPrestamo)
		v1.DELETE("/prestamos/:id", prestamosH.AnularPrestamo)

		v1.GET("/productos-por-almacen/:id/movimientos", movimientosH.ListarMovimientos)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
