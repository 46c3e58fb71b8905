package reference

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CodeNotFound is the violation code for a missing or deleted reference.
const CodeNotFound = "reference_not_found"

// Entity names a referenced table. Rows of a SoftDelete entity with
// deleted_at set count as missing.
type Entity struct {
	Name       string
	Table      string
	SoftDelete bool
}

var (
	Customer     = Entity{Name: "Customer", Table: "customers", SoftDelete: true}
	Port         = Entity{Name: "Port", Table: "ports", SoftDelete: true}
	Currency     = Entity{Name: "Currency", Table: "currencies", SoftDelete: true}
	BankDetail   = Entity{Name: "Bank Detail", Table: "bank_details", SoftDelete: true}
	ShipmentTerm = Entity{Name: "Shipment Term", Table: "shipment_terms", SoftDelete: true}
	PaymentTerm  = Entity{Name: "Payment Term", Table: "payment_terms", SoftDelete: true}
	Product      = Entity{Name: "Product", Table: "products", SoftDelete: true}
	Unit         = Entity{Name: "Unit", Table: "units", SoftDelete: true}
	PackageType  = Entity{Name: "Package Type", Table: "package_types", SoftDelete: true}
	Material     = Entity{Name: "Material", Table: "materials", SoftDelete: true}
	Quotation    = Entity{Name: "Quotation", Table: "quotations", SoftDelete: true}
	User         = Entity{Name: "User", Table: "users"}
)

// Check asserts that ID, when set, names a live row of Entity.
type Check struct {
	Field   string
	Entity  Entity
	ID      *snowflake.ID
	Message string
}

type Violation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ViolationError carries every failed check of one request.
type ViolationError struct {
	Violations []Violation
}

func (e *ViolationError) Error() string {
	messages := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		messages = append(messages, v.Message)
	}
	return strings.Join(messages, "; ")
}

type Validator struct {
	log *zap.Logger
}

func NewValidator(log *zap.Logger) *Validator {
	return &Validator{log: log.Named("reference.validator")}
}

// Validate runs every check and reports all failures at once. Checks
// against the same table share one query. db may be a transaction.
func (v *Validator) Validate(ctx context.Context, db *gorm.DB, checks ...Check) error {
	wanted := map[Entity][]snowflake.ID{}
	for _, check := range checks {
		if check.ID == nil {
			continue
		}
		wanted[check.Entity] = append(wanted[check.Entity], *check.ID)
	}
	if len(wanted) == 0 {
		return nil
	}

	live := make(map[Entity]map[snowflake.ID]struct{}, len(wanted))
	for entity, ids := range wanted {
		found, err := existing(ctx, db, entity, ids)
		if err != nil {
			return err
		}
		live[entity] = found
	}

	var violations []Violation
	for _, check := range checks {
		if check.ID == nil {
			continue
		}
		if _, ok := live[check.Entity][*check.ID]; ok {
			continue
		}
		violations = append(violations, Violation{
			Field:   check.Field,
			Code:    CodeNotFound,
			Message: check.Message,
		})
	}
	if len(violations) == 0 {
		return nil
	}

	v.log.Debug("reference validation failed", zap.Int("violations", len(violations)))
	return &ViolationError{Violations: violations}
}

func existing(ctx context.Context, db *gorm.DB, entity Entity, ids []snowflake.ID) (map[snowflake.ID]struct{}, error) {
	stmt := db.WithContext(ctx).Table(entity.Table).Where("id IN ?", dedupe(ids))
	if entity.SoftDelete {
		stmt = stmt.Where("deleted_at IS NULL")
	}

	var found []snowflake.ID
	if err := stmt.Pluck("id", &found).Error; err != nil {
		return nil, err
	}

	set := make(map[snowflake.ID]struct{}, len(found))
	for _, id := range found {
		set[id] = struct{}{}
	}
	return set, nil
}

func dedupe(ids []snowflake.ID) []snowflake.ID {
	seen := make(map[snowflake.ID]struct{}, len(ids))
	out := make([]snowflake.ID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
