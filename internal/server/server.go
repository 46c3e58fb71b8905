package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/tradedesk/internal/auth"
	authdomain "github.com/smallbiznis/tradedesk/internal/auth/domain"
	"github.com/smallbiznis/tradedesk/internal/authorization"
	"github.com/smallbiznis/tradedesk/internal/combo"
	combodomain "github.com/smallbiznis/tradedesk/internal/combo/domain"
	"github.com/smallbiznis/tradedesk/internal/config"
	"github.com/smallbiznis/tradedesk/internal/configuration"
	configurationdomain "github.com/smallbiznis/tradedesk/internal/configuration/domain"
	"github.com/smallbiznis/tradedesk/internal/customer"
	customerdomain "github.com/smallbiznis/tradedesk/internal/customer/domain"
	"github.com/smallbiznis/tradedesk/internal/document"
	"github.com/smallbiznis/tradedesk/internal/invoice"
	invoicedomain "github.com/smallbiznis/tradedesk/internal/invoice/domain"
	"github.com/smallbiznis/tradedesk/internal/observability"
	obslogger "github.com/smallbiznis/tradedesk/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/tradedesk/internal/observability/metrics"
	obstracing "github.com/smallbiznis/tradedesk/internal/observability/tracing"
	"github.com/smallbiznis/tradedesk/internal/organization"
	organizationdomain "github.com/smallbiznis/tradedesk/internal/organization/domain"
	"github.com/smallbiznis/tradedesk/internal/proformainvoice"
	proformadomain "github.com/smallbiznis/tradedesk/internal/proformainvoice/domain"
	"github.com/smallbiznis/tradedesk/internal/product"
	productdomain "github.com/smallbiznis/tradedesk/internal/product/domain"
	"github.com/smallbiznis/tradedesk/internal/providers"
	"github.com/smallbiznis/tradedesk/internal/providers/pdf"
	"github.com/smallbiznis/tradedesk/internal/providers/spreadsheet"
	"github.com/smallbiznis/tradedesk/internal/quotation"
	quotationdomain "github.com/smallbiznis/tradedesk/internal/quotation/domain"
	"github.com/smallbiznis/tradedesk/internal/ratelimit"
	"github.com/smallbiznis/tradedesk/internal/reference"
	"github.com/smallbiznis/tradedesk/internal/role"
	roledomain "github.com/smallbiznis/tradedesk/internal/role/domain"
	"github.com/smallbiznis/tradedesk/internal/settings"
	settingsdomain "github.com/smallbiznis/tradedesk/internal/settings/domain"
	"github.com/smallbiznis/tradedesk/internal/upload"
	uploaddomain "github.com/smallbiznis/tradedesk/internal/upload/domain"
	"github.com/smallbiznis/tradedesk/internal/user"
	userdomain "github.com/smallbiznis/tradedesk/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	reference.Module,
	document.Module,
	ratelimit.Module,
	authorization.Module,
	auth.Module,
	organization.Module,
	role.Module,
	user.Module,
	customer.Module,
	settings.Module,
	product.Module,
	configuration.Module,
	quotation.Module,
	invoice.Module,
	proformainvoice.Module,
	combo.Module,
	upload.Module,
	providers.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
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
	engine         *gin.Engine
	cfg            config.Config
	documentConfig *config.DocumentConfigHolder

	authsvc  authdomain.Service
	authzSvc authorization.Service

	organizationSvc    organizationdomain.Service
	roleSvc            roledomain.Service
	userSvc            userdomain.Service
	customerSvc        customerdomain.Service
	productSvc         productdomain.Service
	packageSvc         productdomain.PackageService
	configurationSvc   configurationdomain.Service
	quotationSvc       quotationdomain.Service
	invoiceSvc         invoicedomain.Service
	proformaInvoiceSvc proformadomain.Service
	comboSvc           combodomain.Service
	uploadSvc          uploaddomain.Service

	portSvc               settingsdomain.Service[settingsdomain.Port]
	currencySvc           settingsdomain.Service[settingsdomain.Currency]
	paymentTermSvc        settingsdomain.Service[settingsdomain.PaymentTerm]
	shipmentTermSvc       settingsdomain.Service[settingsdomain.ShipmentTerm]
	materialSvc           settingsdomain.Service[settingsdomain.Material]
	packageTypeSvc        settingsdomain.Service[settingsdomain.PackageType]
	bankDetailSvc         settingsdomain.Service[settingsdomain.BankDetail]
	unitSvc               settingsdomain.Service[settingsdomain.Unit]
	qualitySpeculationSvc settingsdomain.Service[settingsdomain.QualitySpeculation]

	renderer pdf.Renderer
	sheets   spreadsheet.Writer
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	DocumentConfig *config.DocumentConfigHolder `optional:"true"`

	Authsvc  authdomain.Service
	AuthzSvc authorization.Service

	OrganizationSvc    organizationdomain.Service
	RoleSvc            roledomain.Service
	UserSvc            userdomain.Service
	CustomerSvc        customerdomain.Service
	ProductSvc         productdomain.Service
	PackageSvc         productdomain.PackageService
	ConfigurationSvc   configurationdomain.Service
	QuotationSvc       quotationdomain.Service
	InvoiceSvc         invoicedomain.Service
	ProformaInvoiceSvc proformadomain.Service
	ComboSvc           combodomain.Service
	UploadSvc          uploaddomain.Service

	PortSvc               settingsdomain.Service[settingsdomain.Port]
	CurrencySvc           settingsdomain.Service[settingsdomain.Currency]
	PaymentTermSvc        settingsdomain.Service[settingsdomain.PaymentTerm]
	ShipmentTermSvc       settingsdomain.Service[settingsdomain.ShipmentTerm]
	MaterialSvc           settingsdomain.Service[settingsdomain.Material]
	PackageTypeSvc        settingsdomain.Service[settingsdomain.PackageType]
	BankDetailSvc         settingsdomain.Service[settingsdomain.BankDetail]
	UnitSvc               settingsdomain.Service[settingsdomain.Unit]
	QualitySpeculationSvc settingsdomain.Service[settingsdomain.QualitySpeculation]

	Renderer pdf.Renderer
	Sheets   spreadsheet.Writer
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:                p.Gin,
		cfg:                   p.Cfg,
		documentConfig:        p.DocumentConfig,
		authsvc:               p.Authsvc,
		authzSvc:              p.AuthzSvc,
		organizationSvc:       p.OrganizationSvc,
		roleSvc:               p.RoleSvc,
		userSvc:               p.UserSvc,
		customerSvc:           p.CustomerSvc,
		productSvc:            p.ProductSvc,
		packageSvc:            p.PackageSvc,
		configurationSvc:      p.ConfigurationSvc,
		quotationSvc:          p.QuotationSvc,
		invoiceSvc:            p.InvoiceSvc,
		proformaInvoiceSvc:    p.ProformaInvoiceSvc,
		comboSvc:              p.ComboSvc,
		uploadSvc:             p.UploadSvc,
		portSvc:               p.PortSvc,
		currencySvc:           p.CurrencySvc,
		paymentTermSvc:        p.PaymentTermSvc,
		shipmentTermSvc:       p.ShipmentTermSvc,
		materialSvc:           p.MaterialSvc,
		packageTypeSvc:        p.PackageTypeSvc,
		bankDetailSvc:         p.BankDetailSvc,
		unitSvc:               p.UnitSvc,
		qualitySpeculationSvc: p.QualitySpeculationSvc,
		renderer:              p.Renderer,
		sheets:                p.Sheets,
	}

	svc.registerAuthRoutes()
	svc.registerAdminRoutes()
	svc.registerSettingsRoutes()
	svc.registerQuotationRoutes()
	svc.registerInvoiceRoutes()
	svc.registerProformaInvoiceRoutes()
	svc.registerComboRoutes()
	svc.registerUploadRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/login", s.Login)
	auth.GET("/profile", s.AuthRequired(), s.Profile)
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin", s.AuthRequired())

	registerResource(admin.Group("/organizations", s.RequireSuperAdmin(authorization.ObjectOrganization)), s.organizationResource())
	registerResource(admin.Group("/role"), s.roleResource())
	registerResource(admin.Group("/users"), s.userResource())
}

func (s *Server) registerSettingsRoutes() {
	authed := s.engine.Group("", s.AuthRequired())
	settings := authed.Group("/settings")

	registerResource(settings.Group("/customers", s.RequireAdmin(authorization.ObjectCustomer)), s.customerResource())
	registerResource(settings.Group("/ports", s.RequireAdmin(authorization.ObjectPort)),
		settingsResource[settingsdomain.Port, settingsdomain.CreatePortRequest, settingsdomain.UpdatePortRequest](s.portSvc))
	registerResource(settings.Group("/currencies", s.RequireAdmin(authorization.ObjectCurrency)),
		settingsResource[settingsdomain.Currency, settingsdomain.CreateCurrencyRequest, settingsdomain.UpdateCurrencyRequest](s.currencySvc))
	registerResource(settings.Group("/payment-terms", s.RequireAdmin(authorization.ObjectPaymentTerm)),
		settingsResource[settingsdomain.PaymentTerm, settingsdomain.CreatePaymentTermRequest, settingsdomain.UpdateTermRequest](s.paymentTermSvc))
	registerResource(settings.Group("/shipment-terms", s.RequireAdmin(authorization.ObjectShipmentTerm)),
		settingsResource[settingsdomain.ShipmentTerm, settingsdomain.CreateShipmentTermRequest, settingsdomain.UpdateTermRequest](s.shipmentTermSvc))
	registerResource(settings.Group("/materials", s.RequireAdmin(authorization.ObjectMaterial)),
		settingsResource[settingsdomain.Material, settingsdomain.CreateMaterialRequest, settingsdomain.UpdateMaterialRequest](s.materialSvc))
	registerResource(settings.Group("/bank-details", s.RequireAdmin(authorization.ObjectBankDetail)),
		settingsResource[settingsdomain.BankDetail, settingsdomain.CreateBankDetailRequest, settingsdomain.UpdateBankDetailRequest](s.bankDetailSvc))
	registerResource(settings.Group("/units", s.RequireAdmin(authorization.ObjectUnit)),
		settingsResource[settingsdomain.Unit, settingsdomain.CreateUnitRequest, settingsdomain.UpdateUnitRequest](s.unitSvc))
	registerResource(settings.Group("/quality-speculations", s.RequireAdmin(authorization.ObjectQualitySpec)),
		settingsResource[settingsdomain.QualitySpeculation, settingsdomain.CreateQualitySpeculationRequest, settingsdomain.UpdateQualitySpeculationRequest](s.qualitySpeculationSvc))
	registerResource(settings.Group("/products", s.RequireAdmin(authorization.ObjectProduct)), s.productResource())
	registerResource(settings.Group("/packages", s.RequireAdmin(authorization.ObjectPackage)), s.packageResource())

	// Package types have always lived outside /settings.
	registerResource(authed.Group("/package-type", s.RequireAdmin(authorization.ObjectPackageType)),
		settingsResource[settingsdomain.PackageType, settingsdomain.CreatePackageTypeRequest, settingsdomain.UpdatePackageTypeRequest](s.packageTypeSvc))

	international := settings.Group("/international-invoice-configuration", s.RequireAdmin(authorization.ObjectConfiguration))
	international.POST("", s.CreateInternationalConfiguration)
	international.GET("", s.GetInternationalConfiguration)
	international.PUT("", s.UpdateInternationalConfiguration)

	domestic := settings.Group("/domestic-invoice-configuration", s.RequireAdmin(authorization.ObjectConfiguration))
	domestic.POST("", s.CreateDomesticConfiguration)
	domestic.GET("", s.GetDomesticConfiguration)
	domestic.PUT("", s.UpdateDomesticConfiguration)
}

func (s *Server) registerQuotationRoutes() {
	quotations := s.engine.Group("/quotations", s.AuthRequired(), DocumentType("quotation"))

	quotations.GET("/export", s.RequireAction(authorization.ObjectQuotation, authorization.ActionExport), s.ExportQuotations)
	quotations.GET("/next-number", s.RequireAction(authorization.ObjectQuotation, authorization.ActionView), s.NextQuotationNumber)
	quotations.GET("/:id/pdf", s.RequireAction(authorization.ObjectQuotation, authorization.ActionExport), s.QuotationPDF)
	registerResource(quotations.Group("", s.RequireAdmin(authorization.ObjectQuotation)), s.quotationResource())
}

func (s *Server) registerInvoiceRoutes() {
	invoices := s.engine.Group("/invoice", s.AuthRequired(), DocumentType("invoice"))

	invoices.GET("/export", s.RequireAction(authorization.ObjectInvoice, authorization.ActionExport), s.ExportInvoices)
	invoices.GET("/:id/pdf", s.RequireAction(authorization.ObjectInvoice, authorization.ActionExport), s.InvoicePDF)
	registerResource(invoices.Group("", s.RequireAdmin(authorization.ObjectInvoice)), s.invoiceResource())
}

func (s *Server) registerProformaInvoiceRoutes() {
	proforma := s.engine.Group("/proforma-invoice", s.AuthRequired(), DocumentType("proforma_invoice"))

	proforma.GET("/export", s.RequireAction(authorization.ObjectProformaInvoice, authorization.ActionExport), s.ExportProformaInvoices)
	proforma.GET("/:id/pdf", s.RequireAction(authorization.ObjectProformaInvoice, authorization.ActionExport), s.ProformaInvoicePDF)
	registerResource(proforma.Group("", s.RequireAdmin(authorization.ObjectProformaInvoice)), s.proformaInvoiceResource())
}

func (s *Server) registerComboRoutes() {
	combo := s.engine.Group("/combo", s.AuthRequired())

	combo.GET("/users", s.combo(s.comboSvc.Users))
	combo.GET("/roles", s.combo(s.comboSvc.Roles))
	combo.GET("/organizations", s.combo(s.comboSvc.Organizations))
	combo.GET("/quotations", s.combo(s.comboSvc.Quotations))
	combo.GET("/countries", s.combo(s.comboSvc.Countries))
}

func (s *Server) registerUploadRoutes() {
	upload := s.engine.Group("/upload", s.AuthRequired(), s.RequireAdmin(authorization.ObjectUpload))

	upload.POST("/file", s.UploadFile)
}
