package loader

import (
	"github.com/notargets/itkloaders/formats"
)

// Host is anything that accepts loader registrations, keyed by the source
// extension and the extension of what the loader produces
type Host interface {
	UseLoader(fn Loader, fromExt, toExt string)
}

// KindHost is a Host that also records which kind of loader it was given
type KindHost interface {
	Host
	UseKindLoader(fn Loader, k formats.Kind, fromExt, toExt string)
}

// Targets overrides the extension each kind is registered to. Empty fields
// fall back to the kind's default target.
type Targets struct {
	Image string
	Mesh  string
}

func (t Targets) target(k formats.Kind) string {
	tgt := t.Image
	if k == formats.Mesh {
		tgt = t.Mesh
	}
	if tgt == "" {
		return k.Target()
	}
	return tgt
}

// UseLoaders registers the formats the host cannot read itself
func UseLoaders(host Host, tk Toolkit) {
	UseLoaderSet(host, tk, formats.Default(), Targets{})
}

// UseAllLoaders registers every toolkit format, replacing host loaders for
// formats both can read
func UseAllLoaders(host Host, tk Toolkit) {
	UseLoaderSet(host, tk, formats.All(), Targets{})
}

// UseLoaderSet registers images before meshes, so an extension present in
// both lists ends with the mesh loader on hosts that keep the last
// registration
func UseLoaderSet(host Host, tk Toolkit, set formats.Set, targets Targets) {
	kh, withKind := host.(KindHost)
	for _, k := range []formats.Kind{formats.Image, formats.Mesh} {
		to := targets.target(k)
		for _, ext := range set.Extensions(k) {
			if withKind {
				kh.UseKindLoader(NewLoader(tk, k, ext), k, ext, to)
				continue
			}
			host.UseLoader(NewLoader(tk, k, ext), ext, to)
		}
	}
}
