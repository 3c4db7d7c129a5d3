package reservation

import (
	"fmt"
	"log/slog"
	"sort"

	apperrors "github.com/nhdewitt/freeletters/internal/errors"
	"github.com/nhdewitt/freeletters/internal/volume"
)

// Store is the MountedDevices key, or a stand-in for it.
type Store interface {
	ValueNames() ([]string, error)
	ReadValue(name string) ([]byte, error)
	HasValue(name string) (bool, error)
	DeleteValue(name string) error
}

// Accessor reads, classifies and deletes reservations.
type Accessor struct {
	store   Store
	volumes volume.Provider
	policy  Policy
	log     *slog.Logger

	// describe turns value data into Reservation.Target.
	describe func([]byte) string
}

// Option configures an Accessor.
type Option func(*Accessor)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(a *Accessor) { a.log = l }
}

// WithTargetDescriber sets how value data is rendered into Reservation.Target.
func WithTargetDescriber(fn func([]byte) string) Option {
	return func(a *Accessor) { a.describe = fn }
}

// NewAccessor returns an accessor over store and volumes. The policy is fixed for its lifetime.
func NewAccessor(store Store, volumes volume.Provider, policy Policy, opts ...Option) *Accessor {
	a := &Accessor{
		store:   store,
		volumes: volumes,
		policy:  policy,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Policy returns the accessor's policy.
func (a *Accessor) Policy() Policy {
	return a.policy
}

// Enumerate reads every reservation from the store, sorted by letter.
func (a *Accessor) Enumerate() ([]*Reservation, error) {
	names, err := a.store.ValueNames()
	if err != nil {
		if apperrors.IsType(err, apperrors.TypeStoreAccess) {
			return nil, err
		}
		return nil, apperrors.StoreAccessError("list reservations", err)
	}

	vols, err := a.volumes.Volumes()
	if err != nil {
		return nil, fmt.Errorf("enumerate volumes: %w", err)
	}
	mounted := volume.MountedSet(vols)

	var result []*Reservation
	for _, name := range names {
		if !IsReservationName(name) {
			continue
		}

		letter, err := ParseValueName(name)
		if err != nil {
			a.log.Debug("skipping value", "name", name, "error", err)
			continue
		}

		v, isMounted := mounted[letter]
		r := New(letter, isMounted, a.policy)
		r.Target = a.target(name)
		if isMounted {
			r.Volume = &v
		}

		result = append(result, r)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Letter < result[j].Letter })

	a.log.Debug("enumerated reservations", "count", len(result), "volumes", len(vols))
	return result, nil
}

func (a *Accessor) target(name string) string {
	if a.describe == nil {
		return ""
	}
	data, err := a.store.ReadValue(name)
	if err != nil {
		a.log.Debug("value data unavailable", "name", name, "error", err)
		return ""
	}
	return a.describe(data)
}

// Classify reports whether letter may be released given the live mount state.
func (a *Accessor) Classify(letter rune) (bool, error) {
	mounted, err := volume.IsMounted(a.volumes, letter)
	if err != nil {
		return false, fmt.Errorf("check mount state of %c: %w", letter, err)
	}
	return Classify(letter, mounted, a.policy), nil
}

// Delete removes the reservation from the store. Unless force is set, a
// reservation that cannot be removed is refused and the live mount state is
// checked first; the check and the delete are not atomic.
func (a *Accessor) Delete(r *Reservation, force bool) error {
	if !force {
		if !r.CanBeRemoved() {
			return apperrors.InUseError(r.Letter)
		}
		mounted, err := volume.IsMounted(a.volumes, r.Letter)
		if err != nil {
			return fmt.Errorf("check mount state of %c: %w", r.Letter, err)
		}
		if mounted {
			return apperrors.InUseError(r.Letter)
		}
	}

	name := r.ValueName()
	if err := a.store.DeleteValue(name); err != nil {
		if apperrors.IsType(err, apperrors.TypeStoreAccess) {
			return err
		}
		return apperrors.StoreAccessError(fmt.Sprintf("delete %s", name), err).
			WithContext("letter", string(r.Letter))
	}

	a.log.Info("released drive letter", "letter", string(r.Letter), "forced", force)
	return nil
}

// Remove releases a reservation that CanBeRemoved. The mount state is
// re-checked unless the policy always allows removal.
func (a *Accessor) Remove(r *Reservation) error {
	if !r.CanBeRemoved() {
		return apperrors.InUseError(r.Letter)
	}
	return a.Delete(r, a.policy.AlwaysAllowRemove)
}

// BatchResult reports the outcome of DeleteMarked.
type BatchResult struct {
	Deleted []rune
	Failed  rune
	Err     error
}

// DeleteMarked removes every reservation marked for removal, in order, and
// stops at the first failure. Letters deleted before the failure stay deleted.
func (a *Accessor) DeleteMarked(rs []*Reservation) BatchResult {
	var res BatchResult
	for _, r := range rs {
		if !r.MarkedForRemoval {
			continue
		}
		if err := a.Remove(r); err != nil {
			a.log.Warn("release failed", "letter", string(r.Letter), "error", err)
			res.Failed = r.Letter
			res.Err = err
			return res
		}
		res.Deleted = append(res.Deleted, r.Letter)
	}
	return res
}

// VolumeInfo returns the volume currently mounted at letter.
func (a *Accessor) VolumeInfo(letter rune) (volume.Volume, error) {
	return volume.Lookup(a.volumes, letter)
}

// Label returns the volume label for a mounted reservation, or "" if none.
// The scan snapshot is used when present; otherwise the volumes are queried.
func (a *Accessor) Label(r *Reservation) string {
	if r.Volume != nil {
		return r.Volume.Label
	}
	if !r.Mounted {
		return ""
	}

	v, err := a.VolumeInfo(r.Letter)
	if err != nil {
		if !apperrors.IsType(err, apperrors.TypeNotMounted) {
			a.log.Debug("volume lookup failed", "letter", string(r.Letter), "error", err)
		}
		return ""
	}
	return v.Label
}

// Exists reports whether the reservation is still in the store.
func (a *Accessor) Exists(r *Reservation) bool {
	ok, err := a.store.HasValue(r.ValueName())
	if err != nil {
		return false
	}
	return ok
}
