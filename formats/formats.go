package formats

import "strings"

// Kind separates loaders that produce volumes from loaders that produce
// surfaces
type Kind uint8

const (
	Image Kind = iota
	Mesh
	// Unknown marks loaders registered without a kind
	Unknown Kind = 255
)

var (
	kindNames   = [...]string{"image", "mesh"}
	kindTargets = [...]string{"nii", "mz3"}
)

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Target is the extension the host expects a loader of this kind to emit,
// empty for kinds without a default
func (k Kind) Target() string {
	if int(k) >= len(kindTargets) {
		return ""
	}
	return kindTargets[k]
}

// KindForTarget maps a target extension back to the kind that emits it
func KindForTarget(to string) Kind {
	for i, tgt := range kindTargets {
		if tgt == to {
			return Kind(i)
		}
	}
	return Unknown
}

var (
	// Image formats the toolkit reads that the host does not handle natively
	imageExtensions = []string{
		"bmp", "gipl", "gipl.gz", "hdf5", "lsm", "mnc", "mnc.gz", "mnc2",
		"mgh", "mgz", "mgh.gz", "mha", "mhd", "mrc", "nia", "hdr", "pic",
		"tif", "tiff", "isq", "aim", "fdf",
	}
	// Image formats the host also reads, loading these overrides the host
	overlapImageExtensions = []string{
		"dcm", "jpg", "jpeg", "nii", "nii.gz", "nrrd", "nhdr", "png", "vtk",
	}
	meshExtensions        = []string{"byu", "swc", "vtk"}
	overlapMeshExtensions = []string{"fsa", "fsb", "obj", "off", "stl"}
)

func ImageExtensions() []string { return join(imageExtensions) }

func AllImageExtensions() []string { return join(imageExtensions, overlapImageExtensions) }

func MeshExtensions() []string { return join(meshExtensions) }

func AllMeshExtensions() []string { return join(meshExtensions, overlapMeshExtensions) }

func join(lists ...[]string) (out []string) {
	for _, l := range lists {
		out = append(out, l...)
	}
	return
}

// Set is an ordered pair of extension lists, one per Kind
type Set struct {
	Images []string
	Meshes []string
}

// Default holds only the formats the host cannot read itself
func Default() Set {
	return Set{Images: ImageExtensions(), Meshes: MeshExtensions()}
}

// All holds every format the toolkit reads
func All() Set {
	return Set{Images: AllImageExtensions(), Meshes: AllMeshExtensions()}
}

// Extensions returns the list for kind k
func (s Set) Extensions(k Kind) []string {
	if k == Mesh {
		return s.Meshes
	}
	return s.Images
}

// Merge appends the extensions of extra that s does not already carry,
// keeping the order of both. Extensions are normalized to lowercase without a
// leading dot.
func (s Set) Merge(extra Set) (out Set) {
	out.Images = mergeList(s.Images, extra.Images)
	out.Meshes = mergeList(s.Meshes, extra.Meshes)
	return
}

func mergeList(base, extra []string) (out []string) {
	seen := make(map[string]bool, len(base)+len(extra))
	out = make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, ext := range list {
			ext = Normalize(ext)
			if ext == "" || seen[ext] {
				continue
			}
			seen[ext] = true
			out = append(out, ext)
		}
	}
	return
}

// Normalize lowercases ext and strips any leading dots
func Normalize(ext string) string {
	return strings.TrimLeft(strings.ToLower(strings.TrimSpace(ext)), ".")
}
