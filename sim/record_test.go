package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRecord_DefaultsStatus(t *testing.T) {
	r := NewRecord("r1", RecordInput{Name: "DKB", Category: CategoryAccounts})
	assert.Equal(t, StatusNotContacted, r.Status)
	assert.Equal(t, "r1", r.ID)

	r = NewRecord("r2", RecordInput{Name: "Netflix", Status: StatusManualDone})
	assert.Equal(t, StatusManualDone, r.Status)
}

func TestRecordStatus_Classification(t *testing.T) {
	tests := []struct {
		status   RecordStatus
		pending  bool
		terminal bool
	}{
		{StatusNotContacted, true, false},
		{StatusSent, true, false},
		{StatusConfirmed, false, true},
		{StatusManualDone, false, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.pending, tt.status.IsPending())
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
			assert.True(t, IsValidStatus(string(tt.status)))
		})
	}
	assert.False(t, IsValidStatus("lost"))
	assert.False(t, IsValidStatus(""))
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, IsValidCategory(string(c)))
	}
	assert.False(t, IsValidCategory("Konten"))
}

func TestRecordPatch_OnlyNonNilFieldsApplied(t *testing.T) {
	// GIVEN a record and a patch touching only the customer id
	r := Record{ID: "r1", ProviderID: "dkb", Name: "DKB", Category: CategoryAccounts, Status: StatusSent}
	customer := "4711"

	// WHEN applied
	got := RecordPatch{CustomerID: &customer}.apply(r)

	// THEN everything else is unchanged
	want := r
	want.CustomerID = "4711"
	assert.Equal(t, want, got)
}

func TestRecord_String(t *testing.T) {
	r := Record{ID: "r1", Name: "DKB", Category: CategoryAccounts, Status: StatusSent}
	assert.Equal(t, "Record: (ID: r1, Name: DKB, Category: accounts, Status: sent)", r.String())
}
