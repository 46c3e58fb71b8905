package authorization

import (
	"context"
	_ "embed"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"github.com/smallbiznis/tradedesk/internal/orgcontext"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectOrganization     = "organization"
	ObjectRole             = "role"
	ObjectUser             = "user"
	ObjectCustomer         = "customer"
	ObjectPort             = "port"
	ObjectCurrency         = "currency"
	ObjectPaymentTerm      = "payment_term"
	ObjectShipmentTerm     = "shipment_term"
	ObjectMaterial         = "material"
	ObjectPackageType      = "package_type"
	ObjectBankDetail       = "bank_detail"
	ObjectUnit             = "unit"
	ObjectProduct          = "product"
	ObjectPackage          = "package"
	ObjectQualitySpec      = "quality_specification"
	ObjectConfiguration    = "invoice_configuration"
	ObjectQuotation        = "quotation"
	ObjectInvoice          = "invoice"
	ObjectProformaInvoice  = "proforma_invoice"
	ObjectUpload           = "upload"
	ObjectAll              = "*"
)

const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionExport = "export"
	ActionAll    = "*"
)

// adminObjects is everything an Admin manages. Organizations are reserved
// for Super Admin.
var adminObjects = []string{
	ObjectRole,
	ObjectUser,
	ObjectCustomer,
	ObjectPort,
	ObjectCurrency,
	ObjectPaymentTerm,
	ObjectShipmentTerm,
	ObjectMaterial,
	ObjectPackageType,
	ObjectBankDetail,
	ObjectUnit,
	ObjectProduct,
	ObjectPackage,
	ObjectQualitySpec,
	ObjectConfiguration,
	ObjectQuotation,
	ObjectInvoice,
	ObjectProformaInvoice,
	ObjectUpload,
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, roleName string, object string, action string) error {
	subject := Subject(roleName)
	if subject == "" {
		return ErrInvalidRole
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	allowed, err := s.enforcer.Enforce(subject, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("authorization denied",
			zap.String("subject", subject),
			zap.String("object", object),
			zap.String("action", action),
		)
		return &orgcontext.ForbiddenError{Message: "Forbidden resource"}
	}
	return nil
}

// Subject maps a role name to its policy subject: "Super Admin" becomes
// "role:super_admin".
func Subject(roleName string) string {
	fields := strings.Fields(strings.ToLower(roleName))
	if len(fields) == 0 {
		return ""
	}
	return "role:" + strings.Join(fields, "_")
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	policies := [][]string{
		{Subject(orgcontext.SuperAdminRole), ObjectAll, ActionAll},
	}
	for _, object := range adminObjects {
		policies = append(policies, []string{Subject(orgcontext.AdminRole), object, ActionAll})
	}

	for _, policy := range policies {
		has, err := enforcer.HasPolicy(policy)
		if err != nil {
			return err
		}
		if has {
			continue
		}
		if _, err := enforcer.AddPolicy(policy); err != nil {
			return err
		}
	}
	return nil
}
