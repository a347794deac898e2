package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedModel{}))
	return db
}

func setupRecorder(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, rec
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, a := range attrs {
		if string(a.Key) == key {
			return a.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestNewDBTracingPlugin_Defaults(t *testing.T) {
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true}, zap.NewNop())
	assert.Equal(t, 200*time.Millisecond, p.config.SlowQueryThresh)
	assert.Equal(t, "postgresql", p.config.DBSystem)
	assert.False(t, p.config.IncludeVariables)
}

func TestDBTracingPlugin_Register(t *testing.T) {
	t.Run("disabled is a no-op", func(t *testing.T) {
		db := setupTestDB(t)
		require.NoError(t, NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop()).Register(db))
		assert.Nil(t, db.Callback().Query().Get("otel_slow_query:query"))
	})

	t.Run("enabled registers callbacks and queries still work", func(t *testing.T) {
		db := setupTestDB(t)
		cfg := DefaultDBTracingConfig()
		cfg.Enabled = true
		cfg.DBSystem = "sqlite"

		require.NoError(t, NewDBTracingPlugin(cfg, zap.NewNop()).Register(db))
		assert.NotNil(t, db.Callback().Query().Get("otel_slow_query:query"))

		require.NoError(t, db.Create(&tracedModel{Name: "a"}).Error)
		var got tracedModel
		require.NoError(t, db.First(&got).Error)
		assert.Equal(t, "a", got.Name)
	})
}

func TestDBTracingPlugin_AfterQuery(t *testing.T) {
	plugin := NewDBTracingPlugin(DBTracingConfig{Enabled: true, SlowQueryThresh: 50 * time.Millisecond}, zap.NewNop())

	t.Run("record not found is not an error", func(t *testing.T) {
		db := setupTestDB(t)
		tp, rec := setupRecorder(t)
		ctx, span := tp.Tracer("test").Start(context.Background(), "not-found")

		var out tracedModel
		tx := db.WithContext(ctx).First(&out, 999)
		require.ErrorIs(t, tx.Error, gorm.ErrRecordNotFound)

		plugin.afterQuery(tx)
		span.End()

		spans := rec.Ended()
		require.Len(t, spans, 1)
		assert.NotEqual(t, codes.Error, spans[0].Status().Code)
		table, ok := attrValue(spans[0].Attributes(), "db.sql.table")
		require.True(t, ok)
		assert.Equal(t, "traced_models", table.AsString())
	})

	t.Run("other errors mark the span", func(t *testing.T) {
		db := setupTestDB(t)
		tp, rec := setupRecorder(t)
		ctx, span := tp.Tracer("test").Start(context.Background(), "failing")

		var out tracedModel
		tx := db.WithContext(ctx).Find(&out)
		tx.Error = errors.New("connection reset")

		plugin.afterQuery(tx)
		span.End()

		spans := rec.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)
	})

	t.Run("slow queries are flagged", func(t *testing.T) {
		db := setupTestDB(t)
		tp, rec := setupRecorder(t)
		ctx, span := tp.Tracer("test").Start(context.Background(), "slow")
		ctx = context.WithValue(ctx, queryStartTimeKey, time.Now().Add(-time.Second))

		var out []tracedModel
		tx := db.WithContext(ctx).Find(&out)
		plugin.afterQuery(tx)
		span.End()

		spans := rec.Ended()
		require.Len(t, spans, 1)
		slow, ok := attrValue(spans[0].Attributes(), "db.slow_query")
		require.True(t, ok)
		assert.True(t, slow.AsBool())
	})
}
