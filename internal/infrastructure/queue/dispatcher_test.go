package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartclinic/clinic-system/internal/core/ports"
)

type recordingService struct {
	mu       sync.Mutex
	statuses map[string][]string
	wg       sync.WaitGroup
}

func (s *recordingService) Process(_ context.Context, event ports.AppointmentEventInput) error {
	s.mu.Lock()
	s.statuses[event.AppointmentID] = append(s.statuses[event.AppointmentID], event.Status)
	s.mu.Unlock()
	s.wg.Done()
	return nil
}

func TestDispatcher_PerAppointmentOrdering(t *testing.T) {
	svc := &recordingService{statuses: make(map[string][]string)}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	sequence := []string{"checked_in", "completed"}
	ids := []string{"apt_1", "apt_2", "apt_3", "apt_4", "apt_5"}
	svc.wg.Add(len(ids) * len(sequence))

	for _, status := range sequence {
		var batch []ports.AppointmentEventInput
		for _, id := range ids {
			batch = append(batch, ports.AppointmentEventInput{
				AppointmentID: id,
				Status:        status,
				Timestamp:     time.Now(),
				Source:        "front_desk",
			})
		}
		d.EnqueueBatch(batch)
	}

	done := make(chan struct{})
	go func() {
		svc.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for events")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	for _, id := range ids {
		got := svc.statuses[id]
		if len(got) != 2 || got[0] != "checked_in" || got[1] != "completed" {
			t.Fatalf("appointment %s processed out of order: %v", id, got)
		}
	}
}

func TestDispatcher_ShardIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingService{statuses: map[string][]string{}}, zerolog.Nop())

	for _, id := range []string{"apt_1", "apt_2", "x"} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if d.shardIndex(id) != first {
				t.Fatalf("shard index for %s is not stable", id)
			}
		}
	}
}
