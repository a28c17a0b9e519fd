package dto

// ApprovalDecisionRequest - решение супер-админа по заявке коуча
type ApprovalDecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=APPROVE REJECT"`
}

// AdminCreateUserRequest - ручное создание пользователя супер-админом
type AdminCreateUserRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,max=30"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        string `json:"role" validate:"required,oneof=SUPER_ADMIN COACH STUDENT"`
	AccessLevel string `json:"access_level" validate:"omitempty,oneof=ADMIN USER"`
}

// AdminUserListQuery - фильтры списка пользователей
type AdminUserListQuery struct {
	Role     string `form:"role" validate:"omitempty,oneof=SUPER_ADMIN COACH STUDENT"`
	Status   string `form:"status" validate:"omitempty,oneof=PENDING ACTIVE DISABLED"`
	Search   string `form:"search" validate:"omitempty,max=100"`
	Page     int    `form:"page" validate:"omitempty,gte=1"`
	PageSize int    `form:"page_size" validate:"omitempty,gte=1,lte=100"`
}

// UpdateAdminConfigRequest - платформенная конфигурация
type UpdateAdminConfigRequest struct {
	CheckoutWebhookURL *string `json:"checkout_webhook_url" validate:"omitempty,url"`
	SupportEmail       *string `json:"support_email" validate:"omitempty,email"`
}

// UpdatePlanPricingRequest - цены платформенных тарифов
type UpdatePlanPricingRequest struct {
	StarterAmount   *int64   `json:"starter_amount" validate:"omitempty,gte=0"`
	ProAmount       *int64   `json:"pro_amount" validate:"omitempty,gte=0"`
	Currency        *string  `json:"currency" validate:"omitempty,currency"`
	StarterFeatures []string `json:"starter_features"`
	ProFeatures     []string `json:"pro_features"`
}

// CheckoutSessionRequest - запрос checkout-сессии платформенного тарифа
type CheckoutSessionRequest struct {
	Plan string `json:"plan" validate:"required,oneof=STARTER PRO"`
}

// CheckoutSessionResponse - ссылка на оплату у провайдера
type CheckoutSessionResponse struct {
	RedirectURL string `json:"redirect_url"`
}
