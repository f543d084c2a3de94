// Package recovery walks every interface and saved profile of an open WLAN
// session and turns each profile document into a credential result.
package recovery

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/nhdewitt/wlancreds/internal/adapter"
	"github.com/nhdewitt/wlancreds/internal/credential"
	"github.com/nhdewitt/wlancreds/internal/profile"
	"github.com/nhdewitt/wlancreds/internal/wlanapi"
)

// Options controls a single run.
type Options struct {
	Logger *slog.Logger

	// PlaintextKeys asks the service to include keys in clear.
	PlaintextKeys bool

	// SSIDFilter keeps profiles whose name contains it, case-insensitively.
	SSIDFilter string

	// Interface limits the run to one adapter; uuid.Nil means all.
	Interface uuid.UUID

	// Adapters names interfaces after their connection; may be nil.
	Adapters adapter.Enricher
}

// Stats counts what a run saw and skipped.
type Stats struct {
	Interfaces int
	Profiles   int
	Results    int

	// KeysWithheld counts shared-key results returned without a key.
	KeysWithheld int

	SkippedRecords      int // undecodable interface or profile entries
	EnumerationFailures int
	ListFailures        int
	FetchFailures       int
	ParseFailures       int
	Filtered            int
}

// Run processes every interface of sess. Service failures are logged and
// counted in Stats; an error is returned only when sess cannot be used.
func Run(sess *wlanapi.Session, opts Options) ([]credential.Result, Stats, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	var stats Stats

	ifaces, skipped, err := sess.Interfaces()
	if errors.Is(err, wlanapi.ErrEnumerationFailed) {
		stats.EnumerationFailures++
		log.Warn("enumerating interfaces failed", "err", err)
		return nil, stats, nil
	}
	if err != nil {
		return nil, stats, err
	}
	for _, e := range skipped {
		stats.SkippedRecords++
		log.Warn("skipping interface", "err", e)
	}

	var results []credential.Result
	for _, iface := range ifaces {
		id := iface.GUID.UUID()
		if opts.Interface != uuid.Nil && opts.Interface != id {
			continue
		}
		stats.Interfaces++

		info := lookup(id, opts.Adapters)
		name := iface.Description
		if info.Name != "" {
			name = info.Name
		}
		ilog := log.With("interface", iface.Description, "guid", id.String(), "state", iface.State.String())
		if info.MAC != "" {
			ilog = ilog.With("mac", info.MAC)
		}

		profiles, skipped, err := sess.Profiles(iface.GUID)
		if err != nil {
			stats.ListFailures++
			ilog.Warn("listing profiles failed", "err", err)
			continue
		}
		for _, e := range skipped {
			stats.SkippedRecords++
			ilog.Warn("skipping profile", "err", e)
		}

		for _, p := range profiles {
			if !matches(p.Name, opts.SSIDFilter) {
				stats.Filtered++
				continue
			}
			stats.Profiles++

			plog := ilog.With("profile", p.Name)
			plog.Debug("fetching profile", "group_policy", p.GroupPolicy(), "per_user", p.PerUser())

			doc, err := Fetch(sess, iface.GUID, p.Name, opts.PlaintextKeys)
			if err != nil {
				if errors.Is(err, profile.ErrMalformedDocument) {
					stats.ParseFailures++
					plog.Warn("parsing profile failed", "err", err)
				} else {
					stats.FetchFailures++
					plog.Warn("fetching profile failed", "err", err)
				}
				continue
			}

			r := credential.FromDocument(p.Name, doc)
			r.Interface = name
			if credential.IsSharedKey(r.AuthType) && !r.HasKey() {
				stats.KeysWithheld++
				plog.Debug("no readable key material", "auth", r.AuthType)
			}

			results = append(results, r)
			stats.Results++
		}
	}

	return results, stats, nil
}

// Fetch retrieves and parses one profile document.
func Fetch(sess *wlanapi.Session, iface wlanapi.GUID, name string, plaintextKey bool) (*profile.Node, error) {
	doc, err := sess.ProfileXML(iface, name, plaintextKey)
	if err != nil {
		return nil, err
	}

	root, err := profile.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}
	return root, nil
}

func matches(name, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(filter))
}

func lookup(id uuid.UUID, adapters adapter.Enricher) adapter.Info {
	if adapters == nil {
		return adapter.Info{}
	}
	info, _ := adapters.Lookup(id)
	return info
}
