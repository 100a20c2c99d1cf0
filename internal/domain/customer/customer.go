package customer

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/souqmarket/backend/internal/domain/shared"
)

// saudiPhonePattern matches local Saudi mobile numbers (05 followed by 8 digits).
var saudiPhonePattern = regexp.MustCompile(`^05\d{8}$`)

// Customer is the buyer identity consumed by checkout. Registration and
// authentication token issuance happen outside this service.
type Customer struct {
	shared.BaseEntity
	Name  string `gorm:"type:varchar(200);not null" json:"name"`
	Email string `gorm:"type:varchar(200);uniqueIndex;not null" json:"email"`
	Phone string `gorm:"type:varchar(20)" json:"phone"`
}

// TableName specifies the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(name, email string) (*Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "customer name cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "customer email cannot be empty")
	}
	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      email,
	}, nil
}

// ValidPhone reports whether phone is a well formed Saudi mobile number.
func ValidPhone(phone string) bool {
	return saudiPhonePattern.MatchString(phone)
}

// UpdatePhone replaces the customer's stored contact phone.
func (c *Customer) UpdatePhone(phone string) error {
	if !ValidPhone(phone) {
		return shared.NewDomainError("INVALID_PHONE", "phone must match 05 followed by 8 digits")
	}
	c.Phone = phone
	return nil
}

// Repository provides customer persistence.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	Save(ctx context.Context, customer *Customer) error
}
