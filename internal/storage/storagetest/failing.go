// Package storagetest provides storage backends that misbehave on purpose.
package storagetest

import "errors"

// ErrUnavailable is returned by every FailingBackend operation.
var ErrUnavailable = errors.New("storage unavailable")

// FailingBackend fails every call, like a disabled or over-quota store.
type FailingBackend struct {
	Calls int
}

func (f *FailingBackend) Get(string) (string, bool, error) {
	f.Calls++
	return "", false, ErrUnavailable
}

func (f *FailingBackend) Set(string, string) error {
	f.Calls++
	return ErrUnavailable
}

func (f *FailingBackend) Remove(string) error {
	f.Calls++
	return ErrUnavailable
}

func (f *FailingBackend) Clear() error {
	f.Calls++
	return ErrUnavailable
}

func (f *FailingBackend) Keys() ([]string, error) {
	f.Calls++
	return nil, ErrUnavailable
}

// PanickingBackend panics on every call.
type PanickingBackend struct{}

func (PanickingBackend) Get(string) (string, bool, error) { panic("get exploded") }
func (PanickingBackend) Set(string, string) error         { panic("set exploded") }
func (PanickingBackend) Remove(string) error              { panic("remove exploded") }
func (PanickingBackend) Clear() error                     { panic("clear exploded") }
func (PanickingBackend) Keys() ([]string, error)          { panic("keys exploded") }

// QuotaBackend accepts the availability probe, then rejects writes once
// Limit keys are stored.
type QuotaBackend struct {
	Limit   int
	entries map[string]string
}

func (q *QuotaBackend) Get(key string) (string, bool, error) {
	value, ok := q.entries[key]
	return value, ok, nil
}

func (q *QuotaBackend) Set(key, value string) error {
	if q.entries == nil {
		q.entries = make(map[string]string)
	}
	if _, exists := q.entries[key]; !exists && len(q.entries) >= q.Limit {
		return errors.New("quota exceeded")
	}
	q.entries[key] = value
	return nil
}

func (q *QuotaBackend) Remove(key string) error {
	delete(q.entries, key)
	return nil
}

func (q *QuotaBackend) Clear() error {
	q.entries = nil
	return nil
}

func (q *QuotaBackend) Keys() ([]string, error) {
	keys := make([]string, 0, len(q.entries))
	for key := range q.entries {
		keys = append(keys, key)
	}
	return keys, nil
}
