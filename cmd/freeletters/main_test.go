package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/nhdewitt/freeletters/internal/console"
	"github.com/nhdewitt/freeletters/internal/reservation"
	"github.com/nhdewitt/freeletters/internal/volume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore map[string][]byte

func (m mapStore) ValueNames() ([]string, error) {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	return names, nil
}

func (m mapStore) ReadValue(name string) ([]byte, error) {
	if d, ok := m[name]; ok {
		return d, nil
	}
	return nil, errors.New("not found")
}

func (m mapStore) HasValue(name string) (bool, error) {
	_, ok := m[name]
	return ok, nil
}

func (m mapStore) DeleteValue(name string) error {
	if _, ok := m[name]; !ok {
		return errors.New("not found")
	}
	delete(m, name)
	return nil
}

type failingStore struct{ mapStore }

func (failingStore) ValueNames() ([]string, error) {
	return nil, errors.New("Access is denied.")
}

func noEnv(string) string { return "" }

func staticVolumes(vols ...volume.Volume) func(string) (volume.Provider, error) {
	return func(string) (volume.Provider, error) { return volume.Static(vols), nil }
}

func cdeStore() mapStore {
	return mapStore{
		`\DosDevices\C:`: nil,
		`\DosDevices\D:`: nil,
		`\DosDevices\E:`: nil,
	}
}

func TestRun_ForcedWarningBeforeTable(t *testing.T) {
	var out bytes.Buffer
	con := console.NewWithIO(strings.NewReader("\n"), &out, false, 80)

	code := run([]string{"f"}, noEnv, cdeStore(), staticVolumes(volume.Volume{Letter: 'C', Root: `C:\`}), con)
	assert.Equal(t, exitOK, code)

	s := out.String()
	warn := strings.Index(s, "WARNING!")
	table := strings.Index(s, "DRV")
	require.GreaterOrEqual(t, warn, 0)
	require.GreaterOrEqual(t, table, 0)
	assert.Less(t, warn, table)
	assert.Contains(t, s, "3 reserved drive letters, 3 can be released.")
}

func TestRun_NoWarningWithoutForce(t *testing.T) {
	var out bytes.Buffer
	con := console.NewWithIO(strings.NewReader("\n"), &out, false, 80)

	code := run(nil, noEnv, cdeStore(), staticVolumes(volume.Volume{Letter: 'C', Root: `C:\`}), con)
	assert.Equal(t, exitOK, code)
	assert.NotContains(t, out.String(), "WARNING!")
	assert.Contains(t, out.String(), "3 reserved drive letters, 2 can be released.")
}

func TestRun_ScanFailure(t *testing.T) {
	var out bytes.Buffer
	con := console.NewWithIO(strings.NewReader(""), &out, false, 80)

	code := run(nil, noEnv, failingStore{}, staticVolumes(), con)
	assert.Equal(t, exitScan, code)
	assert.Contains(t, out.String(), "An error occurred while loading the drive letters.")
	assert.Contains(t, out.String(), "Access is denied.")
	assert.NotContains(t, out.String(), "DRV")
}

func TestRun_VolumeSourceFailure(t *testing.T) {
	var out bytes.Buffer
	con := console.NewWithIO(strings.NewReader(""), &out, false, 80)

	broken := func(string) (volume.Provider, error) { return nil, errors.New("wmi unavailable") }
	code := run(nil, noEnv, cdeStore(), broken, con)
	assert.Equal(t, exitScan, code)
	assert.NotContains(t, out.String(), "DRV")
}

func TestRun_EmptyStore(t *testing.T) {
	var out bytes.Buffer
	con := console.NewWithIO(strings.NewReader(""), &out, false, 80)

	code := run(nil, noEnv, mapStore{}, staticVolumes(), con)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out.String(), "No drive letter reservations found.")
	assert.NotContains(t, out.String(), "DRV")
}

func TestRun_InvalidConfig(t *testing.T) {
	var out bytes.Buffer
	con := console.NewWithIO(strings.NewReader(""), &out, false, 80)

	env := func(k string) string {
		if k == "FREELETTERS_VOLUME_SOURCE" {
			return "smb"
		}
		return ""
	}
	code := run(nil, env, cdeStore(), staticVolumes(), con)
	assert.Equal(t, exitScan, code)
	assert.Empty(t, out.String())
}

func setup(t *testing.T, force bool) (mapStore, *reservation.Accessor, []*reservation.Reservation) {
	t.Helper()

	store := cdeStore()
	vols := volume.Static{
		{Letter: 'C', Root: `C:\`},
		{Letter: 'E', Root: `E:\`},
	}
	policy := reservation.Policy{Protected: []rune{'C'}, AlwaysAllowRemove: force}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	a := reservation.NewAccessor(store, vols, policy, reservation.WithLogger(log))
	rs, err := a.Enumerate()
	require.NoError(t, err)
	return store, a, rs
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestReleaseSelected_Success(t *testing.T) {
	store, a, rs := setup(t, false)

	var out bytes.Buffer
	con := console.NewWithIO(strings.NewReader("d\ny\n"), &out, false, 80)

	code := releaseSelected(con, a, rs, false, discard())
	assert.Equal(t, exitOK, code)
	assert.NotContains(t, store, `\DosDevices\D:`)
	assert.Contains(t, out.String(), "Released 1 drive letters: D:")
}

func TestReleaseSelected_RejectsInUse(t *testing.T) {
	store, a, rs := setup(t, false)

	var out bytes.Buffer
	con := console.NewWithIO(strings.NewReader("c e\n"), &out, false, 80)

	code := releaseSelected(con, a, rs, false, discard())
	assert.Equal(t, exitOK, code)
	assert.Len(t, store, 3)
	assert.Contains(t, out.String(), "Ignoring C")
	assert.Contains(t, out.String(), "Ignoring E")
	assert.Contains(t, out.String(), "Nothing selected.")
}

func TestReleaseSelected_Declined(t *testing.T) {
	store, a, rs := setup(t, false)

	var out bytes.Buffer
	con := console.NewWithIO(strings.NewReader("d\nn\n"), &out, false, 80)

	code := releaseSelected(con, a, rs, false, discard())
	assert.Equal(t, exitOK, code)
	assert.Contains(t, store, `\DosDevices\D:`)
	assert.Contains(t, out.String(), "Cancelled.")
}

func TestReleaseSelected_ForcedAssumeYes(t *testing.T) {
	store, a, rs := setup(t, true)

	var out bytes.Buffer
	con := console.NewWithIO(strings.NewReader("e c\n"), &out, false, 80)

	code := releaseSelected(con, a, rs, true, discard())
	assert.Equal(t, exitOK, code)
	assert.Len(t, store, 1)
	assert.Contains(t, store, `\DosDevices\D:`)
}

func TestReleaseSelected_PartialFailure(t *testing.T) {
	store, a, rs := setup(t, false)
	delete(store, `\DosDevices\D:`) // removed by someone else after the scan

	var out bytes.Buffer
	con := console.NewWithIO(strings.NewReader("d\n"), &out, false, 80)

	code := releaseSelected(con, a, rs, true, discard())
	assert.Equal(t, exitPartial, code)
	assert.Contains(t, out.String(), "Releasing drive letter D failed.")
}

type countingStore struct {
	mapStore
	lookups int
}

func (s *countingStore) HasValue(name string) (bool, error) {
	s.lookups++
	return s.mapStore.HasValue(name)
}

func TestReleaseSelected_SkipsExistsCheckWithoutDebug(t *testing.T) {
	store := &countingStore{mapStore: cdeStore()}
	vols := volume.Static{{Letter: 'C', Root: `C:\`}}
	a := reservation.NewAccessor(store, vols, reservation.DefaultPolicy(), reservation.WithLogger(discard()))
	rs, err := a.Enumerate()
	require.NoError(t, err)

	con := console.NewWithIO(strings.NewReader("d e\n"), io.Discard, false, 80)
	code := releaseSelected(con, a, rs, true, discard())
	assert.Equal(t, exitOK, code)
	assert.Equal(t, 0, store.lookups)

	debug := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	con = console.NewWithIO(strings.NewReader("f\n"), io.Discard, false, 80)
	store.mapStore[`\DosDevices\F:`] = nil
	rs, err = a.Enumerate()
	require.NoError(t, err)
	code = releaseSelected(con, a, rs, true, debug)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, 1, store.lookups)
}
