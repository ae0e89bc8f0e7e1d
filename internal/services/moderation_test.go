package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

type fakeClassifier struct {
	labels []string
	err    error
	calls  int
}

func (f *fakeClassifier) DetectLabels(ctx context.Context, img []byte) ([]string, error) {
	f.calls++
	return f.labels, f.err
}

type fakeStore struct {
	quarantined  map[string]string
	presignErr   error
	presignCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{quarantined: map[string]string{}}
}

func (f *fakeStore) StoreQuarantined(ctx context.Context, key string, data []byte, reason string) error {
	f.quarantined[key] = reason
	return nil
}

func (f *fakeStore) PresignGet(ctx context.Context, key string) (string, error) {
	f.presignCalls++
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://img.example.com/" + key, nil
}

func TestCheckApprovesCleanImage(t *testing.T) {
	classifier := &fakeClassifier{}
	store := newFakeStore()
	ms := NewModerationService(classifier, store, time.Minute, testLogger(t))

	res := ms.Check(context.Background(), []byte("clean"), "room.jpg")
	if !res.Approved {
		t.Fatalf("clean image rejected: %+v", res)
	}
	if len(store.quarantined) != 0 {
		t.Fatalf("clean image was quarantined: %v", store.quarantined)
	}
}

func TestCheckRejectsAndQuarantinesFlaggedImage(t *testing.T) {
	classifier := &fakeClassifier{labels: []string{"Explicit Nudity", "Violence"}}
	store := newFakeStore()
	ms := NewModerationService(classifier, store, time.Minute, testLogger(t))

	res := ms.Check(context.Background(), []byte("bad"), "room.jpg")
	if res.Approved {
		t.Fatalf("flagged image approved: %+v", res)
	}
	if !strings.Contains(res.Reason, "Explicit Nudity") || !strings.Contains(res.Reason, "Violence") {
		t.Fatalf("reason %q does not list the flagged labels", res.Reason)
	}
	if len(store.quarantined) != 1 {
		t.Fatalf("expected one quarantined object, got %d", len(store.quarantined))
	}
	for key := range store.quarantined {
		if !strings.HasPrefix(key, "quarantine/") || !strings.HasSuffix(key, "-room.jpg") {
			t.Fatalf("quarantine key %q has unexpected shape", key)
		}
	}
}

func TestCheckFailsOpenOnClassifierError(t *testing.T) {
	classifier := &fakeClassifier{err: fmt.Errorf("rekognition unavailable")}
	store := newFakeStore()
	ms := NewModerationService(classifier, store, time.Minute, testLogger(t))

	res := ms.Check(context.Background(), []byte("unknown"), "room.jpg")
	if !res.Approved {
		t.Fatalf("classifier failure must approve, got %+v", res)
	}
	if res.Reason == "" {
		t.Fatalf("fail-open approval must carry a reason")
	}
	if len(store.quarantined) != 0 {
		t.Fatalf("fail-open approval must not quarantine, got %v", store.quarantined)
	}

	// Fail-open verdicts are not cached; a recovered classifier is consulted
	// again for the same bytes.
	classifier.err = nil
	ms.Check(context.Background(), []byte("unknown"), "room.jpg")
	if classifier.calls != 2 {
		t.Fatalf("classifier called %d times, want 2", classifier.calls)
	}
}

func TestCheckCachesVerdictPerContent(t *testing.T) {
	classifier := &fakeClassifier{}
	store := newFakeStore()
	ms := NewModerationService(classifier, store, time.Minute, testLogger(t))

	img := []byte("same bytes")
	ms.Check(context.Background(), img, "a.jpg")
	ms.Check(context.Background(), img, "b.jpg")
	if classifier.calls != 1 {
		t.Fatalf("classifier called %d times, want 1 (verdict is keyed by content)", classifier.calls)
	}

	ms.Check(context.Background(), []byte("different bytes"), "c.jpg")
	if classifier.calls != 2 {
		t.Fatalf("classifier called %d times, want 2 for distinct content", classifier.calls)
	}
}
