package catalogservice

// Business модель бизнеса из CatalogService
type Business struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Active     bool    `json:"active"`
	ManagerIDs []int64 `json:"manager_ids"`
}

// IsManager reports whether the given user manages the business.
func (b *Business) IsManager(userID int64) bool {
	for _, id := range b.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Service модель услуги из CatalogService
type Service struct {
	ID              int64    `json:"id"`
	BusinessID      int64    `json:"business_id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
	Active          bool     `json:"active"`
	IsGroup         bool     `json:"is_group"`
	MaxCapacity     int      `json:"max_capacity"` // только для групповых услуг
}

// Worker модель работника из CatalogService
type Worker struct {
	ID         int64   `json:"id"`
	BusinessID int64   `json:"business_id"`
	Name       string  `json:"name"`
	Active     bool    `json:"active"`
	ServiceIDs []int64 `json:"service_ids"`
}

// Offers reports whether the worker provides the given service.
func (w *Worker) Offers(serviceID int64) bool {
	for _, id := range w.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
