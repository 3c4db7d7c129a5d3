package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/nhdewitt/freeletters/internal/config"
	"github.com/nhdewitt/freeletters/internal/console"
	"github.com/nhdewitt/freeletters/internal/logging"
	"github.com/nhdewitt/freeletters/internal/platform"
	"github.com/nhdewitt/freeletters/internal/registry"
	"github.com/nhdewitt/freeletters/internal/reservation"
	"github.com/nhdewitt/freeletters/internal/version"
	"github.com/nhdewitt/freeletters/internal/volume"
)

const (
	exitOK      = 0
	exitScan    = 1
	exitPartial = 2
)

func main() {
	con := console.New(os.Stdin, os.Stdout)
	os.Exit(run(os.Args[1:], os.Getenv, registry.Open(), volume.New, con))
}

// run drives one session against store. newVolumes builds the mount-state
// provider for the configured source.
func run(args []string, getenv func(string) string, store reservation.Store, newVolumes func(string) (volume.Provider, error), con *console.Console) int {
	cfg, err := config.Load(args, getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return exitScan
	}

	logging.InitLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	log := logging.WithSession(logging.NewSessionID())

	host := platform.Detect()

	con.Printf("%s on %s\n", version.Get(), host)
	if !host.IsAdmin {
		con.Printf("Not running elevated; releasing drive letters will likely be denied.\n")
	}
	con.Printf("\n")

	if cfg.Force {
		con.ShowWarning()
	}

	volumes, err := newVolumes(cfg.VolumeSource)
	if err != nil {
		con.Printf("Error: %v\n", err)
		return exitScan
	}

	policy := reservation.Policy{
		Protected:         cfg.Protected,
		AlwaysAllowRemove: cfg.Force,
	}
	accessor := reservation.NewAccessor(store, volumes, policy,
		reservation.WithLogger(log),
		reservation.WithTargetDescriber(registry.DescribeTarget),
	)

	log.Debug("scanning reservations", "volume_source", cfg.VolumeSource, "force", cfg.Force)

	rs, err := accessor.Enumerate()
	if err != nil {
		logging.WithError(log, err).Error("scan failed")
		con.Printf("An error occurred while loading the drive letters.\n\n%v\n", err)
		return exitScan
	}

	removable, err := reservation.CountRemovable(rs)
	if err != nil {
		con.Printf("No drive letter reservations found.\n")
		return exitOK
	}

	con.Render(rs, accessor.Label)
	con.Summary(len(rs), removable)

	if removable == 0 {
		return exitOK
	}

	return releaseSelected(con, accessor, rs, cfg.AssumeYes, log)
}

func releaseSelected(con *console.Console, accessor *reservation.Accessor, rs []*reservation.Reservation, assumeYes bool, log *slog.Logger) int {
	letters, invalid, err := con.SelectLetters()
	if err != nil {
		con.Printf("Error: %v\n", err)
		return exitOK
	}
	for _, tok := range invalid {
		con.Printf("Ignoring %q: not a drive letter.\n", tok)
	}

	marked, rejected := console.Mark(rs, letters)
	for _, l := range rejected {
		con.Printf("Ignoring %c: not reserved or cannot be released.\n", l)
	}
	if len(marked) == 0 {
		con.Printf("Nothing selected.\n")
		return exitOK
	}

	if !assumeYes {
		ok, err := con.Confirm(len(marked))
		if err != nil || !ok {
			con.Printf("Cancelled.\n")
			return exitOK
		}
	}

	log.Debug("releasing", "letters", reservation.Marked(rs))

	res := accessor.DeleteMarked(rs)
	if log.Enabled(context.Background(), slog.LevelDebug) {
		for _, l := range res.Deleted {
			logging.WithLetter(log, l).Debug("value deleted", "exists", accessor.Exists(reservation.Find(rs, l)))
		}
	}
	if res.Err != nil {
		con.ReportFailure(res.Deleted, res.Failed, res.Err)
		return exitPartial
	}

	con.ReportDeleted(res.Deleted)
	return exitOK
}
