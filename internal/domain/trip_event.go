package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripOperation - операция, породившая событие аудита
type TripOperation string

const (
	TripOpOpen     TripOperation = "open_trip"
	TripOpWeighIn  TripOperation = "first_weighment"
	TripOpWeighOut TripOperation = "second_weighment"
	TripOpGateOut  TripOperation = "gate_out"
	TripOpCancel   TripOperation = "cancel"
)

// TripEvent - неизменяемая запись аудита одной мутации поездки
// Журнал событий append-only: он служит доказательством при спорах
// о взвешивании и никогда не переписывается.
// Payload хранит результирующее состояние поездки после операции,
// поэтому воспроизведение журнала по порядку восстанавливает поездку точно
type TripEvent struct {
	ID        uuid.UUID        `json:"id"`
	TripID    uuid.UUID        `json:"trip_id"`
	Seq       int              `json:"seq"` // Порядковый номер события в журнале поездки
	Operation TripOperation    `json:"operation"`
	ActorID   *uuid.UUID       `json:"actor_id,omitempty"` // Кто выполнил операцию
	Payload   TripEventPayload `json:"payload"`
	CreatedAt time.Time        `json:"created_at"`
}

// TripEventPayload - снимок полей поездки после применения операции
type TripEventPayload struct {
	TripNo            string       `json:"trip_no"`
	VehicleID         uuid.UUID    `json:"vehicle_id"`
	TransporterID     uuid.UUID    `json:"transporter_id"`
	MovementType      MovementType `json:"movement_type"`
	DocumentType      DocumentType `json:"document_type"`
	LinkedDocumentRef string       `json:"linked_document_ref"`
	Status            TripStatus   `json:"status"`
	GrossWeight       *float64     `json:"gross_weight,omitempty"`
	TareWeight        *float64     `json:"tare_weight,omitempty"`
	NetWeight         *float64     `json:"net_weight,omitempty"`
	GateInTime        time.Time    `json:"gate_in_time"`
	WeighInTime       *time.Time   `json:"weigh_in_time,omitempty"`
	WeighOutTime      *time.Time   `json:"weigh_out_time,omitempty"`
	GateOutTime       *time.Time   `json:"gate_out_time,omitempty"`
	Remarks           string       `json:"remarks,omitempty"`
	CancelReason      string       `json:"cancel_reason,omitempty"`
}

// NewTripEvent формирует событие аудита из текущего состояния поездки
// Вызывается ПОСЛЕ применения перехода, когда поля уже обновлены
func NewTripEvent(trip *WeighbridgeTrip, op TripOperation, actorID *uuid.UUID) *TripEvent {
	return &TripEvent{
		ID:        uuid.New(),
		TripID:    trip.ID,
		Seq:       trip.Version,
		Operation: op,
		ActorID:   actorID,
		Payload: TripEventPayload{
			TripNo:            trip.TripNo,
			VehicleID:         trip.VehicleID,
			TransporterID:     trip.TransporterID,
			MovementType:      trip.MovementType,
			DocumentType:      trip.DocumentType,
			LinkedDocumentRef: trip.LinkedDocumentRef,
			Status:            trip.Status,
			GrossWeight:       trip.GrossWeight,
			TareWeight:        trip.TareWeight,
			NetWeight:         trip.NetWeight,
			GateInTime:        trip.GateInTime,
			WeighInTime:       trip.WeighInTime,
			WeighOutTime:      trip.WeighOutTime,
			GateOutTime:       trip.GateOutTime,
			Remarks:           trip.Remarks,
			CancelReason:      trip.CancelReason,
		},
		CreatedAt: time.Now(),
	}
}

// ReplayTrip восстанавливает поездку из журнала событий
// Журнал проверяется на непрерывность порядковых номеров: пропуск
// или перестановка означают порчу данных, а не устаревший снимок
func ReplayTrip(events []*TripEvent) (*WeighbridgeTrip, error) {
	if len(events) == 0 {
		return nil, ErrCorruptedEventStream
	}

	trip := &WeighbridgeTrip{}
	for i, e := range events {
		if e.Seq != i+1 {
			return nil, ErrCorruptedEventStream
		}
		if i == 0 {
			if e.Operation != TripOpOpen {
				return nil, ErrCorruptedEventStream
			}
			trip.ID = e.TripID
		} else if e.TripID != trip.ID {
			return nil, ErrCorruptedEventStream
		}
		applyEvent(trip, e)
	}

	trip.Version = events[len(events)-1].Seq
	return trip, nil
}

// applyEvent накладывает снимок события на поездку
func applyEvent(t *WeighbridgeTrip, e *TripEvent) {
	p := e.Payload
	t.TripNo = p.TripNo
	t.VehicleID = p.VehicleID
	t.TransporterID = p.TransporterID
	t.MovementType = p.MovementType
	t.DocumentType = p.DocumentType
	t.LinkedDocumentRef = p.LinkedDocumentRef
	t.Status = p.Status
	t.GrossWeight = p.GrossWeight
	t.TareWeight = p.TareWeight
	t.NetWeight = p.NetWeight
	t.GateInTime = p.GateInTime
	t.WeighInTime = p.WeighInTime
	t.WeighOutTime = p.WeighOutTime
	t.GateOutTime = p.GateOutTime
	t.Remarks = p.Remarks
	t.CancelReason = p.CancelReason
}
