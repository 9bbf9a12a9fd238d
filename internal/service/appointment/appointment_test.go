package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/johnwondoh/careroster/internal/domain"
	"github.com/johnwondoh/careroster/internal/store"
)

func TestCollectRangePagesThroughAllAppointments(t *testing.T) {
	total := 2*metricsPageSize + 50
	backing := make([]domain.Appointment, total)
	for i := range backing {
		backing[i] = domain.Appointment{ID: uuid.New()}
	}

	var offsets []int
	list := func(ctx context.Context, f store.AppointmentFilter) ([]domain.Appointment, error) {
		offsets = append(offsets, f.Offset)
		if f.Offset >= len(backing) {
			return nil, nil
		}
		end := f.Offset + f.Limit
		if end > len(backing) {
			end = len(backing)
		}
		return backing[f.Offset:end], nil
	}

	got, err := collectRange(context.Background(), list, time.Time{}, time.Now())
	if err != nil {
		t.Fatalf("collectRange failed: %v", err)
	}
	if len(got) != total {
		t.Errorf("collected %d appointments, want %d", len(got), total)
	}
	want := []int{0, metricsPageSize, 2 * metricsPageSize}
	if len(offsets) != len(want) {
		t.Fatalf("made %d queries %v, want offsets %v", len(offsets), offsets, want)
	}
	for i, o := range offsets {
		if o != want[i] {
			t.Errorf("query %d used offset %d, want %d", i, o, want[i])
		}
	}
}

func TestCollectRangeSinglePage(t *testing.T) {
	calls := 0
	list := func(ctx context.Context, f store.AppointmentFilter) ([]domain.Appointment, error) {
		calls++
		return []domain.Appointment{{ID: uuid.New()}}, nil
	}

	got, err := collectRange(context.Background(), list, time.Time{}, time.Now())
	if err != nil {
		t.Fatalf("collectRange failed: %v", err)
	}
	if len(got) != 1 || calls != 1 {
		t.Errorf("got %d appointments in %d queries, want 1 in 1", len(got), calls)
	}
}
