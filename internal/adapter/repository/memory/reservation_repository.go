package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/srgjo27/rental_booking/internal/core/domain"
	"github.com/srgjo27/rental_booking/internal/core/ports"
)

// ReservationRepository keeps reservations in process memory. Admission for a
// vehicle is serialised by a per-vehicle mutex, and Insert re-checks overlap
// the way the postgres exclusion constraint does.
type ReservationRepository struct {
	mu        sync.RWMutex
	byID      map[int64]*domain.Reservation
	byVehicle map[uuid.UUID][]int64
	nextID    int64

	locksMu sync.Mutex
	locks   map[uuid.UUID]*sync.Mutex
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{
		byID:      make(map[int64]*domain.Reservation),
		byVehicle: make(map[uuid.UUID][]int64),
		locks:     make(map[uuid.UUID]*sync.Mutex),
	}
}

func (r *ReservationRepository) vehicleLock(vehicleID uuid.UUID) *sync.Mutex {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()

	l, ok := r.locks[vehicleID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[vehicleID] = l
	}
	return l
}

func (r *ReservationRepository) WithVehicleLock(ctx context.Context, vehicleID uuid.UUID, fn func(ctx context.Context, tx ports.ReservationTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l := r.vehicleLock(vehicleID)
	l.Lock()
	defer l.Unlock()

	return fn(ctx, &reservationTx{repo: r, vehicleID: vehicleID})
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *res
	return &out, nil
}

func (r *ReservationRepository) FindOverlapping(ctx context.Context, vehicleID uuid.UUID, interval domain.TimeRange) ([]domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.overlappingLocked(vehicleID, interval), nil
}

func (r *ReservationRepository) overlappingLocked(vehicleID uuid.UUID, interval domain.TimeRange) []domain.Reservation {
	var out []domain.Reservation
	for _, id := range r.byVehicle[vehicleID] {
		res := r.byID[id]
		if domain.Overlaps(res.Interval, interval) {
			out = append(out, *res)
		}
	}
	return out
}

func (r *ReservationRepository) FindBlockingByVehicles(ctx context.Context, vehicleIDs []uuid.UUID, interval domain.TimeRange) (map[uuid.UUID][]domain.TimeRange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[uuid.UUID][]domain.TimeRange, len(vehicleIDs))
	for _, vid := range vehicleIDs {
		for _, res := range r.overlappingLocked(vid, interval) {
			if res.Status.Blocks() {
				out[vid] = append(out[vid], res.Interval)
			}
		}
	}
	return out, nil
}

func (r *ReservationRepository) TransitionStatus(ctx context.Context, id int64, from []domain.ReservationStatus, to domain.ReservationStatus, at time.Time) (*domain.Reservation, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.byID[id]
	if !ok {
		return nil, false, domain.ErrNotFound
	}

	if !slices.Contains(from, res.Status) {
		out := *res
		return &out, false, nil
	}

	res.Status = to
	switch to {
	case domain.ReservationPaid:
		res.PaidAt = &at
	case domain.ReservationCancelled:
		res.CancelledAt = &at
	}

	out := *res
	return &out, true, nil
}

func (r *ReservationRepository) GetStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []int64
	for id, res := range r.byID {
		if res.Status == domain.ReservationPending && res.CreatedAt.Before(createdBefore) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// Count reports how many reservations exist for a vehicle in the given status.
func (r *ReservationRepository) Count(vehicleID uuid.UUID, status domain.ReservationStatus) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, id := range r.byVehicle[vehicleID] {
		if r.byID[id].Status == status {
			n++
		}
	}
	return n
}

type reservationTx struct {
	repo      *ReservationRepository
	vehicleID uuid.UUID
}

func (tx *reservationTx) FindOverlapping(ctx context.Context, vehicleID uuid.UUID, interval domain.TimeRange) ([]domain.Reservation, error) {
	return tx.repo.FindOverlapping(ctx, vehicleID, interval)
}

func (tx *reservationTx) Insert(ctx context.Context, reservation *domain.Reservation) error {
	if reservation.VehicleID != tx.vehicleID {
		return fmt.Errorf("insert for vehicle %s outside its lock on %s", reservation.VehicleID, tx.vehicleID)
	}

	r := tx.repo
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.overlappingLocked(reservation.VehicleID, reservation.Interval) {
		if existing.Status.Blocks() {
			return domain.ErrSlotTaken
		}
	}

	r.nextID++
	reservation.ID = r.nextID

	stored := *reservation
	r.byID[stored.ID] = &stored
	r.byVehicle[stored.VehicleID] = append(r.byVehicle[stored.VehicleID], stored.ID)

	return nil
}
