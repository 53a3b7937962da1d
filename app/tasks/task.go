package tasks

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/proxectonos/galnews/app/article"
)

type TaskType string

const (
	TaskTypeDownloadCategory TaskType = "download_category"
	TaskTypeDownloadFeed     TaskType = "download_feed"
	TaskTypeParseHTML        TaskType = "parse_html"
	TaskTypeParseNewsML      TaskType = "parse_newsml"
)

type TaskInterface interface {
	Execute(ctx context.Context) error
	GetID() string
	GetType() TaskType
	GetResult() Result
}

// Result counts per-item outcomes of one task run. Items that fail are
// logged with enough context to retry manually; they never abort the task.
type Result struct {
	OK      int
	Skipped int
	Errors  int
}

func (r Result) Total() int {
	return r.OK + r.Skipped + r.Errors
}

type Task struct {
	ID        string
	Type      TaskType
	Source    article.Source
	StartedAt *time.Time
}

func (t *Task) GetID() string {
	return t.ID
}

func (t *Task) GetType() TaskType {
	return t.Type
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

func NewTask(taskType TaskType, source article.Source) Task {
	uniqueID := fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Intn(10000))

	return Task{
		ID:     uniqueID,
		Type:   taskType,
		Source: source,
	}
}
