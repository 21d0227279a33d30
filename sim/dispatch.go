package sim

import "github.com/sirupsen/logrus"

// RandomSource yields uniform draws in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// BeginDispatch moves every not_contacted record to sent and leaves all
// other records untouched. Returns a new slice; order and ids are preserved.
func BeginDispatch(records []Record) []Record {
	out := make([]Record, len(records))
	sent := 0
	for i, r := range records {
		if r.Status == StatusNotContacted {
			r.Status = StatusSent
			sent++
		}
		out[i] = r
	}
	logrus.Debugf("dispatch: %d of %d records sent", sent, len(records))
	return out
}

// Tick draws once per sent record and confirms it when the draw is below
// probability. Records in any other state are never touched and consume no draw.
// When nothing changes the input slice itself is returned.
func Tick(records []Record, src RandomSource, probability float64) []Record {
	var out []Record
	for i, r := range records {
		if r.Status != StatusSent {
			continue
		}
		if src.Float64() >= probability {
			continue
		}
		if out == nil {
			out = make([]Record, len(records))
			copy(out, records)
		}
		out[i].Status = StatusConfirmed
		logrus.Debugf("dispatch: %s (%s) confirmed", r.ID, r.Name)
	}
	if out == nil {
		return records
	}
	return out
}

// AnyPending reports whether any record is still not_contacted or sent.
// Dispatch stops once this is false after a tick.
func AnyPending(records []Record) bool {
	for i := range records {
		if records[i].Status.IsPending() {
			return true
		}
	}
	return false
}

// CanDispatch reports whether dispatch may begin: both addresses complete and
// at least one record present.
func CanDispatch(move MoveDetails, records []Record) bool {
	return move.AddressesComplete() && len(records) > 0
}

// Transition captures one status change of one record.
type Transition struct {
	RecordID string
	Name     string
	From     RecordStatus
	To       RecordStatus
	Manual   bool // set by a user edit rather than the simulator
}

// Diff lists the status changes between two versions of a collection,
// matched by id, in the order of after. Added or removed records are ignored.
func Diff(before, after []Record, manual bool) []Transition {
	if len(before) == 0 || len(after) == 0 {
		return nil
	}
	prev := make(map[string]RecordStatus, len(before))
	for _, r := range before {
		prev[r.ID] = r.Status
	}
	var out []Transition
	for _, r := range after {
		from, ok := prev[r.ID]
		if !ok || from == r.Status {
			continue
		}
		out = append(out, Transition{RecordID: r.ID, Name: r.Name, From: from, To: r.Status, Manual: manual})
	}
	return out
}
