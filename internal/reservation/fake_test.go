package reservation

import (
	"errors"
	"io"
	"log/slog"
	"sort"

	"github.com/nhdewitt/freeletters/internal/volume"
)

// memStore is an in-memory MountedDevices key.
type memStore struct {
	values    map[string][]byte
	listErr   error
	deleteErr map[string]error
	deleted   []string
}

func newMemStore(names ...string) *memStore {
	s := &memStore{values: make(map[string][]byte), deleteErr: make(map[string]error)}
	for _, n := range names {
		s.values[n] = []byte{0xde, 0xad}
	}
	return s
}

func (s *memStore) ValueNames() ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	names := make([]string, 0, len(s.values))
	for n := range s.values {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (s *memStore) ReadValue(name string) ([]byte, error) {
	data, ok := s.values[name]
	if !ok {
		return nil, errors.New("The system cannot find the file specified.")
	}
	return data, nil
}

func (s *memStore) HasValue(name string) (bool, error) {
	if s.listErr != nil {
		return false, s.listErr
	}
	_, ok := s.values[name]
	return ok, nil
}

func (s *memStore) DeleteValue(name string) error {
	if err := s.deleteErr[name]; err != nil {
		return err
	}
	if _, ok := s.values[name]; !ok {
		return errors.New("The system cannot find the file specified.")
	}
	delete(s.values, name)
	s.deleted = append(s.deleted, name)
	return nil
}

// switchableVolumes lets a test change the mount state between calls.
type switchableVolumes struct {
	vols  volume.Static
	err   error
	calls int
}

func (s *switchableVolumes) Volumes() ([]volume.Volume, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vols.Volumes()
}

func mountedAt(letters ...rune) *switchableVolumes {
	s := &switchableVolumes{}
	for _, l := range letters {
		s.vols = append(s.vols, volume.Volume{Letter: l, Root: string(l) + `:\`, Label: "VOL_" + string(l)})
	}
	return s
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
