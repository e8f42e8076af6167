package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// MovementType представляет направление движения груза
type MovementType string

const (
	MovementInward  MovementType = "inward"  // Груз прибывает на территорию
	MovementOutward MovementType = "outward" // Груз покидает территорию
)

// DocumentType представляет тип перевозимого материала / документа-основания
type DocumentType string

const (
	DocumentCane        DocumentType = "cane"
	DocumentSugar       DocumentType = "sugar"
	DocumentMolasses    DocumentType = "molasses"
	DocumentBagasse     DocumentType = "bagasse"
	DocumentPressMud    DocumentType = "press_mud"
	DocumentRawMaterial DocumentType = "raw_material"
	DocumentFuel        DocumentType = "fuel"
	DocumentChemicals   DocumentType = "chemicals"
	DocumentOther       DocumentType = "other"
)

var validDocumentTypes = map[DocumentType]struct{}{
	DocumentCane:        {},
	DocumentSugar:       {},
	DocumentMolasses:    {},
	DocumentBagasse:     {},
	DocumentPressMud:    {},
	DocumentRawMaterial: {},
	DocumentFuel:        {},
	DocumentChemicals:   {},
	DocumentOther:       {},
}

// TripStatus представляет состояние поездки на территории
// Переходы строго однонаправленные: gate_in -> weigh_in_1 -> yard -> weigh_in_2 -> gate_out
// Отмена (cancelled) возможна из любого нетерминального состояния
type TripStatus string

const (
	TripStatusGateIn    TripStatus = "gate_in"
	TripStatusWeighIn1  TripStatus = "weigh_in_1"
	TripStatusYard      TripStatus = "yard"
	TripStatusWeighIn2  TripStatus = "weigh_in_2"
	TripStatusGateOut   TripStatus = "gate_out"
	TripStatusCancelled TripStatus = "cancelled"
)

// IsTerminal проверяет, является ли состояние терминальным
func (s TripStatus) IsTerminal() bool {
	return s == TripStatusGateOut || s == TripStatusCancelled
}

// WeighbridgeTrip - проход транспортного средства через весовую
// Изменяется ТОЛЬКО через методы Apply*: реестр поездок не выдает
// наружу изменяемых ссылок, обработчики получают снимки
type WeighbridgeTrip struct {
	ID                uuid.UUID    `json:"id"`
	TripNo            string       `json:"trip_no"` // Человекочитаемый номер TRIP-<год>-<порядковый>
	VehicleID         uuid.UUID    `json:"vehicle_id"`
	TransporterID     uuid.UUID    `json:"transporter_id"`
	MovementType      MovementType `json:"movement_type"`
	DocumentType      DocumentType `json:"document_type"`
	LinkedDocumentRef string       `json:"linked_document_ref"`
	Status            TripStatus   `json:"status"`
	GrossWeight       *float64     `json:"gross_weight,omitempty"` // Вес груженой машины, тонны
	TareWeight        *float64     `json:"tare_weight,omitempty"`  // Вес пустой машины, тонны
	NetWeight         *float64     `json:"net_weight,omitempty"`   // Всегда gross - tare, выводится, не задается
	GateInTime        time.Time    `json:"gate_in_time"`
	WeighInTime       *time.Time   `json:"weigh_in_time,omitempty"`
	WeighOutTime      *time.Time   `json:"weigh_out_time,omitempty"`
	GateOutTime       *time.Time   `json:"gate_out_time,omitempty"`
	Remarks           string       `json:"remarks,omitempty"`
	CancelReason      string       `json:"cancel_reason,omitempty"`

	// Версия для оптимистической блокировки: проигравший из двух
	// конкурентных писателей получает ErrConcurrentModification.
	// Каждый успешный переход увеличивает версию на единицу, номер
	// события аудита всегда равен версии после перехода
	Version int `json:"version"`

	// Связанные данные (не хранятся в БД, заполняются при необходимости)
	Vehicle     *Vehicle     `json:"vehicle,omitempty"`
	Transporter *Transporter `json:"transporter,omitempty"`
	History     []*TripEvent `json:"history,omitempty"`
}

// NewTrip создает поездку в состоянии gate_in
func NewTrip(tripNo string, vehicle *Vehicle, transporter *Transporter, movement MovementType, document DocumentType, linkedDocumentRef string) (*WeighbridgeTrip, error) {
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}
	if transporter == nil {
		return nil, ErrTransporterNotFound
	}
	if movement != MovementInward && movement != MovementOutward {
		return nil, ErrInvalidMovementType
	}
	if _, ok := validDocumentTypes[document]; !ok {
		return nil, ErrInvalidDocumentType
	}
	if linkedDocumentRef == "" {
		return nil, ErrMissingDocumentRef
	}

	return &WeighbridgeTrip{
		ID:                uuid.New(),
		TripNo:            tripNo,
		VehicleID:         vehicle.ID,
		TransporterID:     transporter.ID,
		MovementType:      movement,
		DocumentType:      document,
		LinkedDocumentRef: linkedDocumentRef,
		Status:            TripStatusGateIn,
		GateInTime:        time.Now(),
		Version:           1,
	}, nil
}

// IsOpen проверяет, находится ли поездка в нетерминальном состоянии
func (t *WeighbridgeTrip) IsOpen() bool {
	return !t.Status.IsTerminal()
}

// ValidateWeight проверяет, что показание весов является конечным неотрицательным числом
func ValidateWeight(weight float64) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return ErrInvalidWeight
	}
	return nil
}

// ApplyFirstWeighment фиксирует первый проезд через весы
// Входящая машина приезжает груженой - первый проезд дает брутто;
// исходящая приезжает пустой под погрузку - первый проезд дает тару.
// После взвешивания машина уходит на разгрузку/погрузку (yard)
func (t *WeighbridgeTrip) ApplyFirstWeighment(weight float64, at time.Time) error {
	if t.Status.IsTerminal() {
		return ErrTripTerminal
	}
	if t.Status != TripStatusGateIn {
		return ErrInvalidTripState
	}
	if err := ValidateWeight(weight); err != nil {
		return err
	}

	if t.MovementType == MovementInward {
		if err := applyInwardWeighment(t, weight); err != nil {
			return err
		}
	} else {
		if err := applyOutwardWeighment(t, weight); err != nil {
			return err
		}
	}

	t.Status = TripStatusYard
	t.WeighInTime = &at
	t.Version++
	return nil
}

// ApplySecondWeighment фиксирует второй проезд через весы и вычисляет нетто
// Принимается из yard либо из weigh_in_1 (старые записи до упрощения потока)
func (t *WeighbridgeTrip) ApplySecondWeighment(weight float64, at time.Time) error {
	if t.Status.IsTerminal() {
		return ErrTripTerminal
	}
	if t.Status != TripStatusYard && t.Status != TripStatusWeighIn1 {
		return ErrInvalidTripState
	}
	if err := ValidateWeight(weight); err != nil {
		return err
	}

	if t.MovementType == MovementInward {
		if err := applyInwardWeighment(t, weight); err != nil {
			return err
		}
	} else {
		if err := applyOutwardWeighment(t, weight); err != nil {
			return err
		}
	}

	t.Status = TripStatusWeighIn2
	t.WeighOutTime = &at
	t.Version++
	return nil
}

// applyInwardWeighment - переход взвешивания для входящего груза:
// первый проезд записывает брутто, второй - тару и нетто
func applyInwardWeighment(t *WeighbridgeTrip, weight float64) error {
	if t.GrossWeight == nil {
		t.GrossWeight = &weight
		return nil
	}
	// Пустая машина не может весить больше груженой - это ошибка оператора
	if weight > *t.GrossWeight {
		return ErrNegativeNetWeight
	}
	net := *t.GrossWeight - weight
	t.TareWeight = &weight
	t.NetWeight = &net
	return nil
}

// applyOutwardWeighment - переход взвешивания для исходящего груза:
// первый проезд записывает тару, второй - брутто и нетто
func applyOutwardWeighment(t *WeighbridgeTrip, weight float64) error {
	if t.TareWeight == nil {
		t.TareWeight = &weight
		return nil
	}
	if weight < *t.TareWeight {
		return ErrNegativeNetWeight
	}
	net := weight - *t.TareWeight
	t.GrossWeight = &weight
	t.NetWeight = &net
	return nil
}

// ApplyGateOut завершает поездку
func (t *WeighbridgeTrip) ApplyGateOut(at time.Time) error {
	if t.Status.IsTerminal() {
		return ErrTripTerminal
	}
	if t.Status != TripStatusWeighIn2 {
		return ErrInvalidTripState
	}
	if t.NetWeight == nil {
		return ErrNetWeightNotComputed
	}

	t.Status = TripStatusGateOut
	t.GateOutTime = &at
	t.Version++
	return nil
}

// ApplyCancel отменяет поездку из любого нетерминального состояния
// Веса не изменяются: отмена - это состояние, а не удаление записи
func (t *WeighbridgeTrip) ApplyCancel(reason string, at time.Time) error {
	if t.Status.IsTerminal() {
		return ErrTripTerminal
	}

	t.Status = TripStatusCancelled
	t.CancelReason = reason
	t.GateOutTime = &at
	t.Version++
	return nil
}
