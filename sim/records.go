package sim

// Collection edits on []Record. Every function is pure: the input slice is
// never modified, and a call that changes nothing returns the input slice
// itself so callers can compare headers to detect a no-op.

// maxIDAttempts bounds regeneration when a generator repeats an existing id
// (e.g. a counter restarted after records were restored from storage).
const maxIDAttempts = 16

// Add prepends a new record built from input and returns the new collection.
// The id comes from ids and is regenerated while it collides with an existing record.
func Add(records []Record, input RecordInput, ids IDGenerator) []Record {
	id := uniqueID(records, ids)
	out := make([]Record, 0, len(records)+1)
	out = append(out, NewRecord(id, input))
	return append(out, records...)
}

// AddSelection adds one record per input, in selection order, each prepended
// as if added singly. Inputs whose ProviderID is already tracked are skipped.
func AddSelection(records []Record, inputs []RecordInput, ids IDGenerator) []Record {
	out := records
	for _, in := range inputs {
		if in.ProviderID != "" && hasProvider(out, in.ProviderID) {
			continue
		}
		out = Add(out, in, ids)
	}
	return out
}

// Update applies patch to the record with the given id.
// Unknown ids are a no-op. Order is preserved.
func Update(records []Record, id string, patch RecordPatch) []Record {
	idx := indexOf(records, id)
	if idx < 0 {
		return records
	}
	out := make([]Record, len(records))
	copy(out, records)
	out[idx] = patch.apply(out[idx])
	return out
}

// SetStatus is Update with only the status patched.
func SetStatus(records []Record, id string, status RecordStatus) []Record {
	return Update(records, id, RecordPatch{Status: &status})
}

// Remove drops the record with the given id. Unknown ids are a no-op.
// The relative order of the remaining records is preserved.
func Remove(records []Record, id string) []Record {
	idx := indexOf(records, id)
	if idx < 0 {
		return records
	}
	out := make([]Record, 0, len(records)-1)
	out = append(out, records[:idx]...)
	return append(out, records[idx+1:]...)
}

// Find returns the record with the given id.
func Find(records []Record, id string) (Record, bool) {
	idx := indexOf(records, id)
	if idx < 0 {
		return Record{}, false
	}
	return records[idx], true
}

// sameSlice reports whether a and b share the same header, i.e. an edit was a no-op.
func sameSlice(a, b []Record) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}

func indexOf(records []Record, id string) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}

func hasProvider(records []Record, providerID string) bool {
	for i := range records {
		if records[i].ProviderID == providerID {
			return true
		}
	}
	return false
}

func uniqueID(records []Record, ids IDGenerator) string {
	id := ids.NewID()
	for attempt := 1; attempt < maxIDAttempts && (id == "" || indexOf(records, id) >= 0); attempt++ {
		id = ids.NewID()
	}
	return id
}
