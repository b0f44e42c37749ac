package domain

import "context"

// Payment methods kept on file. Display-only.
const (
	MethodACH   = "ach"
	MethodCard  = "card"
	MethodCheck = "check"
	MethodOther = "other"
)

type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
	Cadence string `json:"cadence"`
}

type UpdateCustomerRequest struct {
	ID      string  `json:"id"`
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
	Cadence *string `json:"cadence,omitempty"`
}

type CreateProfileRequest struct {
	CustomerID string `json:"customer_id"`
	Method     string `json:"method"`

	ACHRouting string `json:"ach_routing"`
	ACHAccount string `json:"ach_account"`

	CardBrand    string `json:"card_brand"`
	CardLast4    string `json:"card_last4"`
	CardName     string `json:"card_name"`
	CardExpMonth int    `json:"card_exp_month"`
	CardExpYear  int    `json:"card_exp_year"`

	BillStreet       string `json:"bill_street"`
	BillCityStateZip string `json:"bill_city_state_zip"`
}

type ContractRequest struct {
	CustomerID     string `json:"customer_id"`
	CatalogID      string `json:"catalog_id"`
	UnitPriceCents *int64 `json:"unit_price_cents,omitempty"`
}

type Service interface {
	GetByID(ctx context.Context, id string) (Customer, error)
	List(ctx context.Context) ([]Customer, error)
	Create(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	Update(ctx context.Context, req UpdateCustomerRequest) (Customer, error)
	Delete(ctx context.Context, id string) error

	ListProfiles(ctx context.Context, customerID string) ([]PaymentProfile, error)
	CreateProfile(ctx context.Context, req CreateProfileRequest) (PaymentProfile, error)
	SetDefaultProfile(ctx context.Context, customerID, profileID string) error

	ListContracted(ctx context.Context, customerID string) ([]ContractedService, error)
	Contract(ctx context.Context, req ContractRequest) (ContractedService, error)
	Uncontract(ctx context.Context, customerID, contractID string) error
}
