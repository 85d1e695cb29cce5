package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bnema/skiff/internal/application/port"
	"github.com/bnema/skiff/internal/domain/entity"
	"github.com/bnema/skiff/internal/domain/repository"
	"github.com/bnema/skiff/internal/domain/url"
	"github.com/bnema/skiff/internal/logging"
)

const (
	// historyQueueSize is the buffer size for the async history queue.
	// If the queue is full, new records are dropped with a warning.
	historyQueueSize = 100

	// historyWorkerFlushInterval coalesces bursts into fewer writes.
	historyWorkerFlushInterval = 100 * time.Millisecond
)

// NavigateUseCase resolves free-form input to a URL, drives the content view
// and records history asynchronously.
type NavigateUseCase struct {
	historyRepo    repository.HistoryRepository
	searchTemplate func() string

	historyQueue chan string
	done         chan struct{}
	closeOnce    sync.Once
	wg           sync.WaitGroup
	ctx          context.Context // Base context for the background worker
}

// NewNavigateUseCase creates a new navigation use case.
// searchTemplate returns the current search engine template; it is consulted
// on every navigation so settings changes take effect immediately.
func NewNavigateUseCase(ctx context.Context, historyRepo repository.HistoryRepository, searchTemplate func() string) *NavigateUseCase {
	uc := &NavigateUseCase{
		historyRepo:    historyRepo,
		searchTemplate: searchTemplate,
		historyQueue:   make(chan string, historyQueueSize),
		done:           make(chan struct{}),
		ctx:            ctx,
	}

	uc.wg.Add(1)
	go uc.historyWorker()

	return uc
}

// Close shuts down the background history worker, draining pending records.
func (uc *NavigateUseCase) Close() {
	uc.closeOnce.Do(func() {
		close(uc.done)
		uc.wg.Wait()
	})
}

// Resolve classifies free-form input per the navigation grammar and returns
// the URL to load.
func (uc *NavigateUseCase) Resolve(input string) string {
	return url.BuildSearchURL(input, uc.searchTemplate())
}

// Execute resolves input and navigates the content view.
func (uc *NavigateUseCase) Execute(ctx context.Context, view port.ContentView, input string) (string, error) {
	log := logging.FromContext(ctx)

	target := uc.Resolve(input)
	if target == "" {
		return "", fmt.Errorf("empty navigation input")
	}

	log.Debug().Str("input", input).Str("url", target).Msg("navigating")

	if err := view.LoadURI(ctx, target); err != nil {
		return "", fmt.Errorf("failed to load URL: %w", err)
	}

	uc.RecordHistory(ctx, target)
	return target, nil
}

// RecordHistory queues a history entry for async recording.
// Non-blocking so storage I/O never stalls the UI event loop.
func (uc *NavigateUseCase) RecordHistory(ctx context.Context, rawURL string) {
	log := logging.FromContext(ctx)

	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" || strings.HasPrefix(rawURL, "about:") {
		return
	}

	select {
	case uc.historyQueue <- rawURL:
	default:
		log.Warn().Str("url", logging.TruncateURL(rawURL, 60)).Msg("history queue full, dropping record")
	}
}

// UpdateHistoryTitle backfills the title of a history entry after page load.
func (uc *NavigateUseCase) UpdateHistoryTitle(ctx context.Context, historyURL, title string) error {
	log := logging.FromContext(ctx)

	if title == "" {
		return nil
	}

	entry, err := uc.historyRepo.FindByURL(ctx, historyURL)
	if err != nil {
		return fmt.Errorf("failed to find history entry: %w", err)
	}
	if entry == nil {
		// URL changed during load (redirect, SPA); nothing to update.
		log.Debug().Str("url", historyURL).Msg("no history entry found for URL, skipping title update")
		return nil
	}

	entry.Title = title
	if err := uc.historyRepo.Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to update history title: %w", err)
	}

	return nil
}

// historyWorker drains the queue and persists records without blocking the UI.
func (uc *NavigateUseCase) historyWorker() {
	defer uc.wg.Done()

	log := logging.FromContext(uc.ctx).With().
		Str("component", "history-worker").
		Logger()

	ticker := time.NewTicker(historyWorkerFlushInterval)
	defer ticker.Stop()

	pending := make(map[string]int)

	flushPending := func() {
		if len(pending) == 0 {
			return
		}
		for historyURL, visits := range pending {
			uc.persistHistory(uc.ctx, historyURL, visits)
		}
		clear(pending)
	}

	drainQueue := func() {
		for {
			select {
			case recordURL := <-uc.historyQueue:
				pending[recordURL]++
			default:
				return
			}
		}
	}

	for {
		select {
		case recordURL := <-uc.historyQueue:
			pending[recordURL]++
		case <-ticker.C:
			flushPending()
		case <-uc.done:
			log.Debug().Int("remaining", len(uc.historyQueue)).Msg("draining history queue")
			drainQueue()
			flushPending()
			log.Debug().Msg("history worker shutdown complete")
			return
		}
	}
}

// persistHistory writes a history record. Runs on the worker goroutine.
func (uc *NavigateUseCase) persistHistory(ctx context.Context, historyURL string, visits int) {
	log := logging.FromContext(ctx)

	existing, err := uc.historyRepo.FindByURL(ctx, historyURL)
	if err != nil {
		log.Warn().Err(err).Str("url", historyURL).Msg("failed to check history")
		return
	}

	if existing != nil {
		for i := 0; i < max(1, visits); i++ {
			if err := uc.historyRepo.IncrementVisitCount(ctx, historyURL); err != nil {
				log.Warn().Err(err).Str("url", historyURL).Msg("failed to increment visit count")
				return
			}
		}
		return
	}

	entry := entity.NewHistoryEntry(historyURL, "")
	entry.VisitCount = int64(max(1, visits))
	if err := uc.historyRepo.Save(ctx, entry); err != nil {
		log.Warn().Err(err).Str("url", historyURL).Msg("failed to save history")
	}
}
