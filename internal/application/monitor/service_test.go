package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wareops/opsctl/internal/domain"
)

type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Debug(string, map[string]interface{}) {}
func (l *recordingLogger) Info(string, map[string]interface{})  {}
func (l *recordingLogger) Warn(msg string, _ map[string]interface{}) {
	l.mu.Lock()
	l.warns = append(l.warns, msg)
	l.mu.Unlock()
}
func (l *recordingLogger) Error(string, error, map[string]interface{}) {}

func (l *recordingLogger) warnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.warns)
}

// scriptedDocs replays a fixed sequence of status polls, repeating the last
// one once exhausted.
type scriptedDocs struct {
	mu      sync.Mutex
	polls   int
	reports []domain.StatusReport
	errs    []error
}

func (d *scriptedDocs) Status(_ context.Context, documentID string) (domain.StatusReport, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.polls
	d.polls++
	if i < len(d.errs) && d.errs[i] != nil {
		return domain.StatusReport{}, d.errs[i]
	}
	if i >= len(d.reports) {
		i = len(d.reports) - 1
	}
	report := d.reports[i]
	report.DocumentID = documentID
	return report, nil
}

func (d *scriptedDocs) Upload(context.Context, string, string, string) (string, error) {
	return "", nil
}
func (d *scriptedDocs) Results(context.Context, string) (domain.ExtractionResult, error) {
	return domain.ExtractionResult{}, nil
}
func (d *scriptedDocs) Search(context.Context, string) (json.RawMessage, error) {
	return nil, nil
}
func (d *scriptedDocs) Analytics(context.Context) (domain.AnalyticsReport, error) {
	return domain.AnalyticsReport{}, nil
}
func (d *scriptedDocs) Approve(context.Context, string, string, string) error { return nil }
func (d *scriptedDocs) Reject(context.Context, string, string, string, []string) error {
	return nil
}

func TestApplyStatusProgressIsMonotonic(t *testing.T) {
	doc := domain.NewDocument("doc-1", "invoice.pdf", time.Now())

	doc = ApplyStatus(doc, domain.StatusReport{Status: domain.DocumentProcessing, Progress: 40})
	assert.Equal(t, 40, doc.Progress)

	// A stale poll never walks progress backwards.
	doc = ApplyStatus(doc, domain.StatusReport{Status: domain.DocumentProcessing, Progress: 25})
	assert.Equal(t, 40, doc.Progress)
}

func TestApplyStatusStageCompletionNeverReverts(t *testing.T) {
	doc := domain.NewDocument("doc-1", "invoice.pdf", time.Now())

	doc = ApplyStatus(doc, domain.StatusReport{
		Status: domain.DocumentProcessing,
		Stages: []domain.StageReport{
			{Name: "preprocessing", Status: "completed"},
			{Name: "ocr_extraction", Status: "processing"},
		},
	})
	assert.True(t, doc.Stages[0].Completed)

	// The backend omitting a finished stage later does not undo it.
	doc = ApplyStatus(doc, domain.StatusReport{
		Status: domain.DocumentProcessing,
		Stages: []domain.StageReport{{Name: "ocr_extraction", Status: "processing"}},
	})
	assert.True(t, doc.Stages[0].Completed)
}

func TestApplyStatusCurrentStagePrefersProcessing(t *testing.T) {
	doc := domain.NewDocument("doc-1", "invoice.pdf", time.Now())

	doc = ApplyStatus(doc, domain.StatusReport{
		Status: domain.DocumentProcessing,
		Stages: []domain.StageReport{
			{Name: "preprocessing", Status: "completed"},
			{Name: "llm_processing", Status: "processing"},
		},
	})

	var current []string
	for _, stage := range doc.Stages {
		if stage.Current {
			current = append(current, stage.Key)
		}
	}
	assert.Equal(t, []string{"llm_processing"}, current)
}

func TestApplyStatusCurrentStageFallsBackToFirstIncomplete(t *testing.T) {
	doc := domain.NewDocument("doc-1", "invoice.pdf", time.Now())

	doc = ApplyStatus(doc, domain.StatusReport{
		Status: domain.DocumentProcessing,
		Stages: []domain.StageReport{
			{Name: "preprocessing", Status: "completed"},
			{Name: "ocr_extraction", Status: "completed"},
		},
	})

	for i, stage := range doc.Stages {
		assert.Equal(t, i == 2, stage.Current, stage.Key)
	}
}

func TestApplyStatusCompletedForcesFullProgress(t *testing.T) {
	doc := domain.NewDocument("doc-1", "invoice.pdf", time.Now())
	doc.Progress = 60

	doc = ApplyStatus(doc, domain.StatusReport{Status: domain.DocumentCompleted, Progress: 80})

	assert.Equal(t, domain.DocumentCompleted, doc.Status)
	assert.Equal(t, 100, doc.Progress)
	for _, stage := range doc.Stages {
		assert.True(t, stage.Completed, stage.Key)
		assert.False(t, stage.Current, stage.Key)
	}
}

func TestApplyStatusEmptyStatusKeepsCurrent(t *testing.T) {
	doc := domain.NewDocument("doc-1", "invoice.pdf", time.Now())

	doc = ApplyStatus(doc, domain.StatusReport{Progress: 10})
	assert.Equal(t, domain.DocumentProcessing, doc.Status)
}

func TestWatchSettlesOnTerminalStatus(t *testing.T) {
	docs := &scriptedDocs{
		reports: []domain.StatusReport{
			{Status: domain.DocumentProcessing, Progress: 50},
			{Status: domain.DocumentCompleted, Progress: 100},
		},
	}
	svc := NewService(docs, &recordingLogger{}, time.Millisecond, 0)
	svc.Track(domain.NewDocument("doc-1", "invoice.pdf", time.Now()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	final, err := svc.Watch(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentCompleted, final.Status)
	assert.Equal(t, 100, final.Progress)

	assert.Empty(t, svc.Processing())
	completed := svc.Completed()
	require.Len(t, completed, 1)
	assert.Equal(t, "doc-1", completed[0].ID)
}

func TestWatchRetriesAfterPollErrors(t *testing.T) {
	docs := &scriptedDocs{
		errs: []error{errors.New("connection refused"), errors.New("connection refused")},
		reports: []domain.StatusReport{
			{},
			{},
			{Status: domain.DocumentCompleted},
		},
	}
	logger := &recordingLogger{}
	svc := NewService(docs, logger, time.Millisecond, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	final, err := svc.Watch(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentCompleted, final.Status)
	assert.Equal(t, 2, logger.warnCount())
}

func TestWatchAutoTracksUnknownDocument(t *testing.T) {
	docs := &scriptedDocs{
		reports: []domain.StatusReport{{Status: domain.DocumentFailed}},
	}
	svc := NewService(docs, &recordingLogger{}, time.Millisecond, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	final, err := svc.Watch(ctx, "doc-9")
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentFailed, final.Status)
	require.Len(t, svc.Completed(), 1)
}

func TestWatchCancellationReturnsLastSnapshot(t *testing.T) {
	docs := &scriptedDocs{
		reports: []domain.StatusReport{{Status: domain.DocumentProcessing, Progress: 30}},
	}
	svc := NewService(docs, &recordingLogger{}, 50*time.Millisecond, 0)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	final, err := svc.Watch(ctx, "doc-1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 30, final.Progress)
}

func TestWatchWarnsOnceWhenProcessingRunsLong(t *testing.T) {
	docs := &scriptedDocs{
		reports: []domain.StatusReport{
			{Status: domain.DocumentProcessing},
			{Status: domain.DocumentProcessing},
			{Status: domain.DocumentProcessing},
			{Status: domain.DocumentProcessing},
			{Status: domain.DocumentCompleted},
		},
	}
	logger := &recordingLogger{}
	svc := NewService(docs, logger, 5*time.Millisecond, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := svc.Watch(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 1, logger.warnCount())
}

func TestWatchObserverSeesEverySnapshot(t *testing.T) {
	docs := &scriptedDocs{
		reports: []domain.StatusReport{
			{Status: domain.DocumentProcessing, Progress: 20},
			{Status: domain.DocumentProcessing, Progress: 70},
			{Status: domain.DocumentCompleted},
		},
	}
	svc := NewService(docs, &recordingLogger{}, time.Millisecond, 0)

	var mu sync.Mutex
	var progress []int
	svc.OnUpdate = func(doc domain.Document) {
		mu.Lock()
		progress = append(progress, doc.Progress)
		mu.Unlock()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := svc.Watch(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []int{20, 70, 100}, progress)
}
