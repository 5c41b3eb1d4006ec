package tenantservice

// Tenant модель тенанта из TenantService
// Timezone — единственная логическая тайм-зона тенанта, к которой привязываются
// все расчеты доступности
type Tenant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	IsActive bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от TenantService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
