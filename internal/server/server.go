// Package server exposes the application services over a local HTTP
// API consumed by the desktop frontend.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/founderspw/somanager/internal/attachment"
	attachmentdomain "github.com/founderspw/somanager/internal/attachment/domain"
	"github.com/founderspw/somanager/internal/bulk"
	bulkdomain "github.com/founderspw/somanager/internal/bulk/domain"
	"github.com/founderspw/somanager/internal/catalog"
	catalogdomain "github.com/founderspw/somanager/internal/catalog/domain"
	"github.com/founderspw/somanager/internal/config"
	"github.com/founderspw/somanager/internal/customer"
	customerdomain "github.com/founderspw/somanager/internal/customer/domain"
	"github.com/founderspw/somanager/internal/invoice"
	invoicedomain "github.com/founderspw/somanager/internal/invoice/domain"
	"github.com/founderspw/somanager/internal/prefs"
	"github.com/founderspw/somanager/internal/providers/pdf"
	"github.com/founderspw/somanager/internal/serviceorder"
	sodomain "github.com/founderspw/somanager/internal/serviceorder/domain"
	"github.com/founderspw/somanager/internal/staff"
	staffdomain "github.com/founderspw/somanager/internal/staff/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Provide(newMetrics),
	catalog.Module,
	customer.Module,
	staff.Module,
	serviceorder.Module,
	bulk.Module,
	pdf.Module,
	invoice.Module,
	attachment.Module,
	prefs.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, log *zap.Logger) *gin.Engine {
	return NewEngine(cfg, log)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.ListenAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	invoicing     *config.InvoicingConfigHolder
	metrics       *Metrics
	catalogSvc    catalogdomain.Service
	customerSvc   customerdomain.Service
	staffSvc      staffdomain.Service
	orderSvc      sodomain.Service
	bulkSvc       bulkdomain.Service
	invoiceSvc    invoicedomain.Service
	attachmentSvc attachmentdomain.Service
	prefsStore    *prefs.Store
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	Invoicing     *config.InvoicingConfigHolder
	Metrics       *Metrics
	CatalogSvc    catalogdomain.Service
	CustomerSvc   customerdomain.Service
	StaffSvc      staffdomain.Service
	OrderSvc      sodomain.Service
	BulkSvc       bulkdomain.Service
	InvoiceSvc    invoicedomain.Service
	AttachmentSvc attachmentdomain.Service
	PrefsStore    *prefs.Store
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		invoicing:     p.Invoicing,
		metrics:       p.Metrics,
		catalogSvc:    p.CatalogSvc,
		customerSvc:   p.CustomerSvc,
		staffSvc:      p.StaffSvc,
		orderSvc:      p.OrderSvc,
		bulkSvc:       p.BulkSvc,
		invoiceSvc:    p.InvoiceSvc,
		attachmentSvc: p.AttachmentSvc,
		prefsStore:    p.PrefsStore,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Catalog --------
	api.GET("/catalog", s.ListCatalogItems)
	api.POST("/catalog", s.CreateCatalogItem)
	api.GET("/catalog/:id", s.GetCatalogItemByID)
	api.PATCH("/catalog/:id", s.UpdateCatalogItem)
	api.POST("/catalog/:id/deactivate", s.DeactivateCatalogItem)

	// -------- Customers --------
	api.GET("/customers", s.ListCustomers)
	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers/:id", s.GetCustomerByID)
	api.PATCH("/customers/:id", s.UpdateCustomer)
	api.DELETE("/customers/:id", s.DeleteCustomer)

	api.GET("/customers/:id/profiles", s.ListPaymentProfiles)
	api.POST("/customers/:id/profiles", s.CreatePaymentProfile)
	api.POST("/customers/:id/profiles/:profileId/default", s.SetDefaultPaymentProfile)

	api.GET("/customers/:id/contracted", s.ListContractedServices)
	api.POST("/customers/:id/contracted", s.ContractService)
	api.DELETE("/customers/:id/contracted/:contractId", s.UncontractService)

	api.GET("/customers/:id/next-due", s.GetNextDue)
	api.POST("/customers/:id/orders/next", s.CreateNextOrder)

	// -------- Staff --------
	api.GET("/staff", s.ListStaff)
	api.POST("/staff", s.CreateStaffMember)
	api.GET("/staff/:id", s.GetStaffMemberByID)
	api.PATCH("/staff/:id", s.UpdateStaffMember)
	api.DELETE("/staff/:id", s.DeleteStaffMember)

	// -------- Service Orders --------
	api.GET("/orders", s.ListOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrderByID)
	api.PATCH("/orders/:id", s.UpdateOrder)
	api.DELETE("/orders/:id", s.DeleteOrder)

	api.POST("/orders/:id/status", s.SetOrderStatus)
	api.POST("/orders/:id/assign", s.AssignOrder)
	api.POST("/orders/:id/unassign", s.UnassignOrder)

	api.POST("/orders/:id/lines", s.AddOrderLine)
	api.DELETE("/orders/:id/lines/:lineId", s.RemoveOrderLine)

	api.GET("/orders/:id/attachments", s.ListAttachments)
	api.POST("/orders/:id/attachments", s.UploadAttachment)

	api.POST("/orders/:id/invoice", s.AssembleInvoice)
	api.POST("/orders/:id/reopen", s.ReopenOrder)

	// -------- Bulk Actions --------
	api.POST("/orders/bulk", s.ApplyBulkAction)

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.GET("/invoices/:id/pdf", s.DownloadInvoicePDF)

	// -------- Attachments --------
	api.GET("/attachments/:id", s.DownloadAttachment)
	api.DELETE("/attachments/:id", s.DeleteAttachment)

	// -------- Settings & Preferences --------
	api.GET("/settings/invoicing", s.GetInvoicingSettings)
	api.PUT("/settings/invoicing", s.UpdateInvoicingSettings)
	api.GET("/prefs", s.GetPrefs)
	api.PUT("/prefs", s.PutPrefs)
}
