package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mycv/internal/config"
	"mycv/internal/database"
	"mycv/internal/printing"
)

type fakeStorage struct {
	deleted         []string
	deletedPrefixes []string
	filenames       map[string]string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{filenames: map[string]string{}}
}

func (s *fakeStorage) GenerateDownloadURL(_ context.Context, objectKey, filename string, _ time.Duration) (string, error) {
	s.filenames[objectKey] = filename
	return "https://example.invalid/" + objectKey, nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}

func (s *fakeStorage) DeletePrefix(_ context.Context, prefix string) error {
	s.deletedPrefixes = append(s.deletedPrefixes, prefix)
	return nil
}

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: fmt.Sprintf("task-%d", len(q.tasks))}, nil
}

type fakeCounter struct {
	counts    map[string]int64
	expires   map[string]time.Duration
	expireErr error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (f *fakeCounter) Incr(_ context.Context, key string) *redis.IntCmd {
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCounter) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	if f.expireErr != nil {
		return redis.NewBoolResult(false, f.expireErr)
	}
	f.expires[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newPrinter() *printing.Service {
	return printing.New(config.RenderConfig{})
}

// newTestContext 构造带用户身份的 gin 上下文；userID 为空表示未登录。
func newTestContext(t *testing.T, method, target string, body any, userID string, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	if userID != "" {
		c.Set("userID", userID)
	}
	return c, w
}

func idParam(id uint) gin.Param {
	return gin.Param{Key: "id", Value: fmt.Sprint(id)}
}

func newMultipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
}

func TestRateLimitExceeded(t *testing.T) {
	ctx := context.Background()
	counter := newFakeCounter()
	rule := rateLimit{prefix: "rate:test:", limit: 3, window: time.Minute}

	for i := 0; i < 3; i++ {
		limited, err := rule.exceeded(ctx, counter, "u1")
		if err != nil || limited {
			t.Fatalf("attempt %d: limited=%v err=%v", i, limited, err)
		}
	}
	limited, err := rule.exceeded(ctx, counter, "u1")
	if err != nil || !limited {
		t.Fatalf("expected fourth attempt to be limited, got %v %v", limited, err)
	}
	if counter.expires["rate:test:u1"] != time.Minute {
		t.Fatalf("expected window to start on first increment, got %v", counter.expires["rate:test:u1"])
	}

	// 不同用户各自计数。
	if limited, _ := rule.exceeded(ctx, counter, "u2"); limited {
		t.Fatalf("counters must be per user")
	}

	limited, err = rule.exceeded(ctx, nil, "u1")
	if err != nil || limited {
		t.Fatalf("nil counter must never limit")
	}
}

func TestRateLimitReportsExpireFailure(t *testing.T) {
	counter := newFakeCounter()
	counter.expireErr = errors.New("redis readonly")

	limited, err := exportLimit.exceeded(context.Background(), counter, "u1")
	if err == nil || limited {
		t.Fatalf("expected expire failure to surface without limiting, got %v %v", limited, err)
	}
}
