package router

import (
	"time"

	"salonpos/internal/config"
	"salonpos/internal/handler"
	"salonpos/internal/infra"
	"salonpos/internal/middleware"
	"salonpos/internal/observability"
	"salonpos/internal/repository"
	"salonpos/internal/service"
	"salonpos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.OrigenesCORS(), cfg.IsProduction()))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	cajaRepo := repository.NewCajaRepository(db)
	ingresoRepo := repository.NewIngresoRepository(db)
	egresoRepo := repository.NewEgresoRepository(db)
	gastoRepo := repository.NewGastoFijoRepository(db)
	comisionRepo := repository.NewComisionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	dispatcher := worker.NewDispatcher(rdb)

	cajaSvc := service.NewCajaService(cajaRepo, ingresoRepo, egresoRepo)
	libroSvc := service.NewLibroService(ingresoRepo, egresoRepo, cajaSvc)
	conciliacionSvc := service.NewConciliacionService(ingresoRepo, egresoRepo)
	resumenSvc := service.NewResumenService(conciliacionSvc, cajaRepo, gastoRepo, comisionRepo, dispatcher, cfg.ReporteEmailDestino)

	// ── Handlers ─────────────────────────────────────────────────────────────
	cajaH := handler.NewCajaHandler(cajaSvc, conciliacionSvc)
	libroH := handler.NewLibroHandler(libroSvc)
	resumenH := handler.NewResumenHandler(resumenSvc, conciliacionSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))
	r.GET("/metrics", gin.WrapH(observability.Handler()))

	todos := middleware.RequireRole(middleware.RolCajero, middleware.RolAdministrador)
	admin := middleware.RequireRole(middleware.RolAdministrador)

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", todos, cajaH.Abrir)
			caja.POST("/cerrar", todos, cajaH.Cerrar)
			caja.GET("/historial/:mes", admin, cajaH.Historial)
			caja.GET("/:fecha", todos, cajaH.Obtener)
			caja.GET("/:fecha/arqueo", todos, cajaH.Arqueo)
			caja.GET("/:fecha/conciliacion", todos, cajaH.Conciliacion)
			caja.DELETE("/:fecha", admin, cajaH.Eliminar)
		}

		ingresos := v1.Group("/ingresos", todos)
		{
			ingresos.POST("", libroH.CrearIngreso)
			ingresos.GET("", libroH.ListarIngresos)
			ingresos.DELETE("/:id", libroH.EliminarIngreso)
		}

		egresos := v1.Group("/egresos", todos)
		{
			egresos.POST("", libroH.CrearEgreso)
			egresos.GET("", libroH.ListarEgresos)
			egresos.PUT("/:id", libroH.ActualizarEgreso)
			egresos.DELETE("/:id", libroH.EliminarEgreso)
		}

		v1.GET("/conciliacion", admin, resumenH.Conciliar)

		resumen := v1.Group("/resumen", admin)
		{
			resumen.GET("/:mes", resumenH.Resumen)
			resumen.POST("/:mes/enviar", resumenH.Enviar)
		}

		gastos := v1.Group("/gastos-fijos", admin)
		{
			gastos.PUT("/:mes", resumenH.GuardarGastosFijos)
			gastos.GET("/:mes", resumenH.ObtenerGastosFijos)
		}
	}

	// Swagger UI, outside production only
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
