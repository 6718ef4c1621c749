package loader

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/notargets/itkloaders/extension"
	"github.com/notargets/itkloaders/formats"
)

// Entry is one registered loader
type Entry struct {
	From   string
	To     string
	Kind   formats.Kind
	Loader Loader
}

type UnsupportedError struct {
	Filename string
	Token    string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("no loader registered for %q (extension %q)", e.Filename, e.Token)
}

// Registry is an in-process Host. Files are dispatched to a loader by their
// resolved extension token.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	logger  *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		entries: make(map[string]Entry),
		logger:  logger,
	}
}

// UseLoader stores fn for fromExt, replacing any earlier registration. The
// kind is taken from the target extension, formats.Unknown when it is not
// one of the default targets.
func (r *Registry) UseLoader(fn Loader, fromExt, toExt string) {
	r.UseKindLoader(fn, formats.KindForTarget(toExt), fromExt, toExt)
}

// UseKindLoader is UseLoader with an explicit kind. A nil fn is dropped.
func (r *Registry) UseKindLoader(fn Loader, k formats.Kind, fromExt, toExt string) {
	from := strings.ToLower(fromExt)
	if fn == nil {
		r.logger.Warn("nil loader ignored", zap.String("from", from), zap.String("to", toExt))
		return
	}
	r.mu.Lock()
	prev, replaced := r.entries[from]
	r.entries[from] = Entry{From: from, To: toExt, Kind: k, Loader: fn}
	r.mu.Unlock()
	if replaced {
		r.logger.Debug("loader replaced",
			zap.String("from", from), zap.String("to", toExt),
			zap.Stringer("kind", k), zap.String("previous", prev.To))
		return
	}
	r.logger.Debug("loader registered",
		zap.String("from", from), zap.String("to", toExt), zap.Stringer("kind", k))
}

// Lookup finds the loader for filename
func (r *Registry) Lookup(filename string) (e Entry, ok bool) {
	token := extension.Resolve(filename)
	r.mu.RLock()
	e, ok = r.entries[token]
	r.mu.RUnlock()
	return
}

// Load runs the loader registered for filename over src. The target
// extension of the loader is returned alongside its result.
func (r *Registry) Load(ctx context.Context, filename string, src io.Reader) (res *Result, to string, err error) {
	e, ok := r.Lookup(filename)
	if !ok {
		return nil, "", &UnsupportedError{Filename: filename, Token: extension.Resolve(filename)}
	}
	r.logger.Info("loading",
		zap.String("file", filename), zap.String("from", e.From), zap.String("to", e.To))
	if res, err = e.Loader(ctx, src); err != nil {
		r.logger.Error("load failed", zap.String("file", filename), zap.Error(err))
		return nil, "", err
	}
	return res, e.To, nil
}

// Entries returns all registrations ordered by source extension
func (r *Registry) Entries() (entries []Entry) {
	r.mu.RLock()
	entries = make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()
	sort.Slice(entries, func(i, j int) bool { return entries[i].From < entries[j].From })
	return
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
