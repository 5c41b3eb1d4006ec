package catalogservice

// Service модель услуги из каталога
// DurationMinutes может быть nil — каталог допускает услуги без длительности,
// в этом случае расчет доступности подставляет именованный дефолт
type Service struct {
	ID              int64  `json:"id"`
	TenantID        string `json:"tenant_id"`
	Name            string `json:"name"`
	DurationMinutes *int   `json:"duration_minutes"`
	IsActive        bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от каталога услуг
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
