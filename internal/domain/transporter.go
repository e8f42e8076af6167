package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transporter - перевозчик, владеющий транспортными средствами
// Ссылка на перевозчика денормализуется в поездку при ее создании:
// если машину позже передадут другому перевозчику, история поездок не изменится
type Transporter struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	GSTNo         string    `json:"gst_no,omitempty"` // Налоговый номер (опционально)
	ContactPerson string    `json:"contact_person"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Validate проверяет корректность данных перевозчика
func (t *Transporter) Validate() error {
	if t.Name == "" {
		return ErrInvalidTransporterData
	}
	if t.ContactPerson == "" {
		return ErrInvalidTransporterData
	}
	return nil
}
