package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-tidyhome/internal/config"
)

// PeopleSource describes where household-member names are pulled from.
type PeopleSource struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Absolute path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth username
	WebPass   string // HTTP Basic Auth password
}

// PeopleImporter pulls contact names out of a vCard stream so they can be
// merged into the household's people set.
type PeopleImporter struct {
	Fetcher VCardFetcher // Network abstraction; unused for local sources.
}

// Import reads the configured source and returns the distinct contact names
// found, sorted. Malformed cards are skipped to maximize data recovery.
func (imp *PeopleImporter) Import(ctx context.Context, src PeopleSource) ([]string, error) {
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, src.Mode,
	)
	log.Info(config.MsgPeopleSyncReq)

	reader, err := imp.acquireStream(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	names, err := decodeNames(ctx, reader)
	if err != nil {
		return nil, err
	}

	log.Info(config.MsgPeopleSynced, config.LogKeyCount, len(names))
	return names, nil
}

// acquireStream opens the appropriate data source based on configuration.
func (imp *PeopleImporter) acquireStream(ctx context.Context, src PeopleSource) (io.ReadCloser, error) {
	switch src.Mode {
	case config.SourceModeLocal:
		if src.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(src.LocalPath)
	case config.SourceModeWeb:
		if src.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if imp.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return imp.Fetcher.Fetch(ctx, src.WebURL, src.WebUser, src.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, src.Mode)
	}
}

func decodeNames(ctx context.Context, r io.Reader) ([]string, error) {
	decoder := vcard.NewDecoder(r)
	seen := make(map[string]struct{})

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}

		// Name strategy: FN (formatted) > N (structured); skip nameless cards.
		var name string
		if fn := card.Get(config.VCardFN); fn != nil {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil {
			name = n.Value
		}
		if name == "" {
			continue
		}
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
