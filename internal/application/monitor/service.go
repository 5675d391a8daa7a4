package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/ports"
)

const defaultPollInterval = 2 * time.Second

// Service watches in-flight documents by polling backend status on a fixed
// cadence until each reaches a terminal state. Poll failures are logged and
// retried on the next tick; a document only settles on a reported terminal
// status or caller cancellation.
type Service struct {
	docs     ports.DocumentService
	logger   ports.Logger
	interval time.Duration
	// warnAfter emits a single warning for documents processing longer
	// than expected. Zero disables the warning.
	warnAfter time.Duration

	mu         sync.Mutex
	processing map[string]domain.Document
	completed  []domain.Document

	// OnUpdate, when set, observes every reconciled snapshot.
	OnUpdate func(domain.Document)
}

func NewService(docs ports.DocumentService, logger ports.Logger, interval, warnAfter time.Duration) *Service {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Service{
		docs:       docs,
		logger:     logger,
		interval:   interval,
		warnAfter:  warnAfter,
		processing: map[string]domain.Document{},
	}
}

// Track registers a freshly uploaded document as in flight.
func (s *Service) Track(doc domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processing[doc.ID] = doc
}

// Processing returns the in-flight documents.
func (s *Service) Processing() []domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Document, 0, len(s.processing))
	for _, doc := range s.processing {
		out = append(out, doc)
	}
	return out
}

// Completed returns documents that reached a terminal state, most recent
// last.
func (s *Service) Completed() []domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Document(nil), s.completed...)
}

// Watch polls the document until it reaches a terminal state or ctx is
// done. It returns the final snapshot; a cancelled watch returns the last
// observed state with ctx's error.
func (s *Service) Watch(ctx context.Context, documentID string) (domain.Document, error) {
	s.mu.Lock()
	doc, tracked := s.processing[documentID]
	s.mu.Unlock()
	if !tracked {
		doc = domain.NewDocument(documentID, documentID, time.Now())
		s.Track(doc)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	started := time.Now()
	warned := false
	for {
		report, err := s.docs.Status(ctx, documentID)
		if err != nil {
			if ctx.Err() != nil {
				return doc, ctx.Err()
			}
			s.logger.Warn("status poll failed", map[string]interface{}{
				"document_id": documentID,
				"error":       err.Error(),
			})
		} else {
			doc = s.reconcile(doc, report)
			if doc.Status.Terminal() {
				return doc, nil
			}
		}

		if !warned && s.warnAfter > 0 && time.Since(started) > s.warnAfter {
			warned = true
			s.logger.Warn("document processing longer than expected", map[string]interface{}{
				"document_id": documentID,
				"elapsed":     time.Since(started).String(),
			})
		}

		select {
		case <-ctx.Done():
			return doc, ctx.Err()
		case <-ticker.C:
		}
	}
}

// reconcile applies a report under the lock and settles terminal documents.
func (s *Service) reconcile(doc domain.Document, report domain.StatusReport) domain.Document {
	doc = ApplyStatus(doc, report)

	s.mu.Lock()
	if doc.Status.Terminal() {
		delete(s.processing, doc.ID)
		s.completed = append(s.completed, doc)
	} else {
		s.processing[doc.ID] = doc
	}
	s.mu.Unlock()

	if s.OnUpdate != nil {
		s.OnUpdate(doc)
	}
	return doc
}

// ApplyStatus folds one polled report into the document. Stage completion
// and progress are monotonic; a completed document always shows full
// progress with every stage complete. Exactly one stage is current while
// processing: the first one the backend reports as processing, else the
// first incomplete one.
func ApplyStatus(doc domain.Document, report domain.StatusReport) domain.Document {
	if report.Status != "" {
		doc.Status = report.Status
	}
	if report.Progress > doc.Progress {
		doc.Progress = report.Progress
	}

	if len(doc.Stages) == 0 {
		doc.Stages = domain.DefaultStages()
	}
	reported := make(map[string]string, len(report.Stages))
	for _, stage := range report.Stages {
		reported[stage.Name] = stage.Status
	}
	for i := range doc.Stages {
		if reported[doc.Stages[i].Key] == "completed" {
			doc.Stages[i].Completed = true
		}
	}

	if doc.Status == domain.DocumentCompleted {
		doc.Progress = 100
		for i := range doc.Stages {
			doc.Stages[i].Completed = true
			doc.Stages[i].Current = false
		}
		return doc
	}

	currentIndex := -1
	for i := range doc.Stages {
		if reported[doc.Stages[i].Key] == "processing" {
			currentIndex = i
			break
		}
	}
	if currentIndex < 0 {
		for i := range doc.Stages {
			if !doc.Stages[i].Completed {
				currentIndex = i
				break
			}
		}
	}
	for i := range doc.Stages {
		doc.Stages[i].Current = i == currentIndex && doc.Status == domain.DocumentProcessing
	}
	return doc
}
