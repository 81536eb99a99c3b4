package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureRegistered_Idempotent(t *testing.T) {
	EnsureRegistered()
	EnsureRegistered()

	first := getMetrics()
	second := getMetrics()
	assert.Same(t, first, second)
}

func TestRecorders_DoNotPanic(t *testing.T) {
	RecordStoreSave(true)
	RecordStoreSave(false)
	RecordStoreRestore()
	RecordAliasOp("set", true)
	RecordAliasOp("rename", false)
	SetAliasCount(3)
	AddOrphansRemoved(2)
	SetSessionCount(7)
	RecordSessionList()
}

func TestHandler_ExposesFamilies(t *testing.T) {
	RecordStoreSave(true)
	RecordAliasOp("set", true)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "store_saves_total")
	assert.Contains(t, body, "alias_ops_total")
	assert.Contains(t, body, "alias_count")
}
