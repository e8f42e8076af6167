package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// VehicleType представляет тип транспортного средства
type VehicleType string

const (
	VehicleTypeTruck   VehicleType = "truck"
	VehicleTypeTanker  VehicleType = "tanker"
	VehicleTypeTractor VehicleType = "tractor"
)

// Vehicle - транспортное средство перевозчика
// Справочные данные: весовая читает их, но не изменяет
type Vehicle struct {
	ID            uuid.UUID   `json:"id"`
	VehicleNo     string      `json:"vehicle_no"` // Регистрационный номер (уникальный)
	VehicleType   VehicleType `json:"vehicle_type"`
	CapacityMT    float64     `json:"capacity_mt"` // Грузоподъемность в тоннах
	TransporterID uuid.UUID   `json:"transporter_id"`
	IsActive      bool        `json:"is_active"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	// Связанные данные (не хранятся в БД, заполняются при необходимости)
	Transporter *Transporter `json:"transporter,omitempty"`
}

// NormalizeVehicleNo нормализует регистрационный номер (убирает пробелы, приводит к верхнему регистру)
func NormalizeVehicleNo(vehicleNo string) string {
	return strings.ToUpper(strings.ReplaceAll(vehicleNo, " ", ""))
}

// Validate проверяет корректность данных транспортного средства
func (v *Vehicle) Validate() error {
	if v.TransporterID == uuid.Nil {
		return ErrInvalidVehicleData
	}
	if v.VehicleNo == "" {
		return ErrInvalidVehicleNo
	}
	v.VehicleNo = NormalizeVehicleNo(v.VehicleNo)
	if len(v.VehicleNo) < 5 || len(v.VehicleNo) > 20 {
		return ErrInvalidVehicleNo
	}
	if v.VehicleType != VehicleTypeTruck && v.VehicleType != VehicleTypeTanker && v.VehicleType != VehicleTypeTractor {
		return ErrInvalidVehicleData
	}
	if v.CapacityMT <= 0 {
		return ErrInvalidVehicleData
	}
	return nil
}
