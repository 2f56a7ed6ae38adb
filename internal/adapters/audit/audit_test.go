package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"eventregistration/internal/domain"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		f.records = append(f.records, r)
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func sampleRecord() domain.AuditRecord {
	return domain.AuditRecord{
		Action: domain.AuditStatusChanged,
		Change: domain.StatusChange{
			RegistrationID: "reg-1",
			EventID:        "evt-1",
			UserID:         "user-1",
			OldStatus:      domain.StatusPending,
			NewStatus:      domain.StatusApproved,
			ActorID:        "owner-1",
			OccurredAt:     time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestKafkaPublisher_Record(t *testing.T) {
	fp := &fakeProducer{}
	p := NewKafkaPublisher(fp, "registration-audit")

	require.NoError(t, p.Record(context.Background(), sampleRecord()))

	require.Len(t, fp.records, 1)
	r := fp.records[0]
	assert.Equal(t, "registration-audit", r.Topic)
	assert.Equal(t, []byte("reg-1"), r.Key)
	require.Len(t, r.Headers, 1)
	assert.Equal(t, "action", r.Headers[0].Key)
	assert.Equal(t, []byte("registration_status_changed"), r.Headers[0].Value)

	var got domain.AuditRecord
	require.NoError(t, json.Unmarshal(r.Value, &got))
	assert.Equal(t, sampleRecord(), got)
}

func TestKafkaPublisher_RecordError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	fp := &fakeProducer{err: errors.New("broker unavailable")}
	p := NewKafkaPublisher(fp, "registration-audit", WithLogger(logger))

	err := p.Record(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unavailable")
	assert.Contains(t, buf.String(), "audit publish failed")
}

func TestNewKafkaClient_RequiresBrokers(t *testing.T) {
	_, err := NewKafkaClient(nil, "registration-audit")
	assert.Error(t, err)
}

func TestLogSink_Record(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, sink.Record(context.Background(), sampleRecord()))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "registration_status_changed", entry["msg"])
	assert.Equal(t, "audit", entry["component"])
	assert.Equal(t, "reg-1", entry["registration_id"])
	assert.Equal(t, "approved", entry["new_status"])
}
