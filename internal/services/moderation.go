package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/atabernermiller/taberner-studio-app/internal/cache"
	"github.com/atabernermiller/taberner-studio-app/internal/logger"
)

type ModerationResult struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason,omitempty"`
}

// ModerationService screens uploaded images before any analysis runs.
// Policy: a classifier failure approves the image (fail-open) — blocking
// every upload because the moderation backend is down is worse than letting
// an occasional bad image through to a private recommendation flow.
// Fail-open verdicts are not cached or quarantined.
type ModerationService interface {
	Check(ctx context.Context, img []byte, filename string) ModerationResult
	ClearCache()
	CacheStats() cache.Stats
}

type moderationService struct {
	log        *logger.Logger
	classifier ImageClassifier
	store      ImageStore
	cache      *cache.TTL[ModerationResult]
}

func NewModerationService(classifier ImageClassifier, store ImageStore, ttl time.Duration, log *logger.Logger) ModerationService {
	return &moderationService{
		log:        log.With("service", "ModerationService"),
		classifier: classifier,
		store:      store,
		cache:      cache.NewTTL[ModerationResult](ttl),
	}
}

func (ms *moderationService) Check(ctx context.Context, img []byte, filename string) ModerationResult {
	sum := md5.Sum(img)
	key := hex.EncodeToString(sum[:])
	if res, ok := ms.cache.Get(key); ok {
		return res
	}

	labels, err := ms.classifier.DetectLabels(ctx, img)
	if err != nil {
		ms.log.Error("moderation check failed, approving by default", "error", err)
		return ModerationResult{Approved: true, Reason: "moderation check failed, approved by default"}
	}

	var res ModerationResult
	if len(labels) > 0 {
		res = ModerationResult{
			Approved: false,
			Reason:   fmt.Sprintf("inappropriate content detected: %s", strings.Join(labels, ", ")),
		}
		ms.quarantine(ctx, img, filename, res.Reason)
	} else {
		res = ModerationResult{Approved: true}
	}

	ms.cache.Set(key, res)
	return res
}

// quarantine is fire-and-forget; a storage failure is logged and never
// surfaces to the uploader.
func (ms *moderationService) quarantine(ctx context.Context, img []byte, filename, reason string) {
	key := fmt.Sprintf("quarantine/%s-%s", uuid.New().String(), filename)
	if err := ms.store.StoreQuarantined(ctx, key, img, reason); err != nil {
		ms.log.Error("failed to store quarantined image", "key", key, "error", err)
		return
	}
	ms.log.Info("image quarantined", "key", key, "reason", reason)
}

func (ms *moderationService) ClearCache() {
	ms.cache.Clear()
}

func (ms *moderationService) CacheStats() cache.Stats {
	return ms.cache.Stats()
}
