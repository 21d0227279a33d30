package store

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/lemove/lemove/sim"
)

// Storage keys. The suffix versions the document layout.
const (
	MoveKey    = "move_state_v1"
	RecordsKey = "connections_v1"
)

// legacyCategories maps the display labels written by earlier clients.
var legacyCategories = map[string]sim.Category{
	"Konten":         sim.CategoryAccounts,
	"Versicherungen": sim.CategoryInsurance,
	"Abos":           sim.CategorySubscriptions,
	"Sonstiges":      sim.CategoryOther,
}

type addressDoc struct {
	Street     string `yaml:"street"`
	PostalCode string `yaml:"postalCode"`
	City       string `yaml:"city"`
}

type moveDoc struct {
	OldAddress   addressDoc `yaml:"oldAddress"`
	NewAddress   addressDoc `yaml:"newAddress"`
	MoveDate     string     `yaml:"moveDate"`
	AlreadyMoved bool       `yaml:"alreadyMoved"`
	FullName     string     `yaml:"fullName"`
	Email        string     `yaml:"email"`
	Phone        string     `yaml:"phone"`
	Birthday     string     `yaml:"birthday"`
}

type recordDoc struct {
	ID         string `yaml:"id"`
	ProviderID string `yaml:"providerId,omitempty"`
	Name       string `yaml:"name"`
	Category   string `yaml:"category"`
	CustomerID string `yaml:"customerId,omitempty"`
	Status     string `yaml:"status"`
}

// StatePersister loads and saves a move and its records through a KV.
// Loading never fails on bad data: absent or malformed documents yield
// defaults, and only backend errors are returned.
type StatePersister struct {
	kv KV
}

// NewStatePersister creates a StatePersister over kv.
func NewStatePersister(kv KV) *StatePersister {
	return &StatePersister{kv: kv}
}

// LoadMove returns the stored move merged over empty defaults.
func (p *StatePersister) LoadMove() (sim.MoveDetails, error) {
	raw, ok, err := p.kv.Get(MoveKey)
	if err != nil || !ok {
		return sim.MoveDetails{}, err
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		logrus.Warnf("discarding malformed %s: %v", MoveKey, err)
		return sim.MoveDetails{}, nil
	}
	fields, ok := doc.(map[string]any)
	if !ok {
		logrus.Warnf("discarding %s: not an object", MoveKey)
		return sim.MoveDetails{}, nil
	}
	return decodeMove(fields), nil
}

// LoadRecords returns the stored records. Entries that are not objects or
// lack an id or a name are dropped; unknown categories become "other" and
// unknown statuses "not_contacted".
func (p *StatePersister) LoadRecords() ([]sim.Record, error) {
	raw, ok, err := p.kv.Get(RecordsKey)
	if err != nil || !ok {
		return nil, err
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		logrus.Warnf("discarding malformed %s: %v", RecordsKey, err)
		return nil, nil
	}
	items, ok := doc.([]any)
	if !ok {
		logrus.Warnf("discarding %s: not an array", RecordsKey)
		return nil, nil
	}

	records := make([]sim.Record, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		r := decodeRecord(fields)
		if r.ID == "" || r.Name == "" {
			continue
		}
		records = append(records, r)
	}
	if dropped := len(items) - len(records); dropped > 0 {
		logrus.Warnf("dropped %d malformed entries from %s", dropped, RecordsKey)
	}
	return records, nil
}

// SaveMove stores the move details.
func (p *StatePersister) SaveMove(m sim.MoveDetails) error {
	doc := moveDoc{
		OldAddress:   addressDoc(m.OldAddress),
		NewAddress:   addressDoc(m.NewAddress),
		MoveDate:     m.MoveDate,
		AlreadyMoved: m.AlreadyMoved,
		FullName:     m.FullName,
		Email:        m.Email,
		Phone:        m.Phone,
		Birthday:     m.Birthday,
	}
	return p.save(MoveKey, doc)
}

// SaveRecords stores the record collection in order.
func (p *StatePersister) SaveRecords(records []sim.Record) error {
	docs := make([]recordDoc, len(records))
	for i, r := range records {
		docs[i] = recordDoc{
			ID:         r.ID,
			ProviderID: r.ProviderID,
			Name:       r.Name,
			Category:   string(r.Category),
			CustomerID: r.CustomerID,
			Status:     string(r.Status),
		}
	}
	return p.save(RecordsKey, docs)
}

// Load returns both the move and the records.
func (p *StatePersister) Load() (sim.MoveDetails, []sim.Record, error) {
	move, err := p.LoadMove()
	if err != nil {
		return sim.MoveDetails{}, nil, err
	}
	records, err := p.LoadRecords()
	if err != nil {
		return sim.MoveDetails{}, nil, err
	}
	return move, records, nil
}

func (p *StatePersister) save(key string, doc any) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := p.kv.Set(key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func decodeMove(fields map[string]any) sim.MoveDetails {
	var m sim.MoveDetails
	m.OldAddress = decodeAddress(fields["oldAddress"])
	m.NewAddress = decodeAddress(fields["newAddress"])
	if s, ok := fields["moveDate"].(string); ok {
		m.MoveDate = s
	}
	if b, ok := fields["alreadyMoved"].(bool); ok {
		m.AlreadyMoved = b
	}
	m.FullName = stringField(fields, "fullName")
	m.Email = stringField(fields, "email")
	m.Phone = stringField(fields, "phone")
	m.Birthday = stringField(fields, "birthday")
	return m
}

func decodeAddress(v any) sim.Address {
	fields, ok := v.(map[string]any)
	if !ok {
		return sim.Address{}
	}
	return sim.Address{
		Street:     stringField(fields, "street"),
		PostalCode: stringField(fields, "postalCode"),
		City:       stringField(fields, "city"),
	}
}

func decodeRecord(fields map[string]any) sim.Record {
	category := sim.CategoryOther
	if c := stringField(fields, "category"); sim.IsValidCategory(c) {
		category = sim.Category(c)
	} else if legacy, ok := legacyCategories[c]; ok {
		category = legacy
	}
	status := sim.StatusNotContacted
	if s := stringField(fields, "status"); sim.IsValidStatus(s) {
		status = sim.RecordStatus(s)
	}
	return sim.Record{
		ID:         stringField(fields, "id"),
		ProviderID: stringField(fields, "providerId"),
		Name:       stringField(fields, "name"),
		Category:   category,
		CustomerID: stringField(fields, "customerId"),
		Status:     status,
	}
}

// stringField coerces a scalar to its string form. Absent, null and
// non-scalar values become "".
func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
