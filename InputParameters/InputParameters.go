package InputParameters

import (
	"fmt"
	"io"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/itkloaders/extension"
	"github.com/notargets/itkloaders/formats"
	"github.com/notargets/itkloaders/loader"
)

// Parameters obtained from the YAML loader parameters file
type LoaderParameters struct {
	Title                string   `yaml:"Title"`
	All                  bool     `yaml:"All"`
	ImageTarget          string   `yaml:"ImageTarget"`
	MeshTarget           string   `yaml:"MeshTarget"`
	ExtraImageExtensions []string `yaml:"ExtraImageExtensions"`
	ExtraMeshExtensions  []string `yaml:"ExtraMeshExtensions"`
}

// ExampleFile is printed when a parameters file is requested but missing
const ExampleFile = `
########################################
Title: "Site loaders"
All: true # Also replace the host loaders for formats it reads natively
ImageTarget: nii
MeshTarget: mz3
ExtraImageExtensions: [img]
ExtraMeshExtensions: [gii]
########################################
`

func (lp *LoaderParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, lp)
}

// Validate checks that every extra extension is one a file name can resolve
// to. Empty targets are allowed and select the kind's default target.
func (lp *LoaderParameters) Validate() (err error) {
	check := func(kind string, exts []string) error {
		for _, ext := range exts {
			if ext == "" || ext != formats.Normalize(ext) {
				return fmt.Errorf("%s extension %q must be lowercase without a leading dot", kind, ext)
			}
			if token := extension.Resolve("input." + ext); token != ext {
				return fmt.Errorf("%s extension %q can never be dispatched, files named *.%s resolve to %q",
					kind, ext, ext, token)
			}
		}
		return nil
	}
	if err = check("image", lp.ExtraImageExtensions); err != nil {
		return
	}
	if err = check("mesh", lp.ExtraMeshExtensions); err != nil {
		return
	}
	if strings.Contains(lp.ImageTarget, ".") || strings.Contains(lp.MeshTarget, ".") {
		return fmt.Errorf("targets must be bare extensions, got %q and %q", lp.ImageTarget, lp.MeshTarget)
	}
	return
}

// Set is the format set these parameters select
func (lp *LoaderParameters) Set() formats.Set {
	base := formats.Default()
	if lp.All {
		base = formats.All()
	}
	return base.Merge(formats.Set{
		Images: lp.ExtraImageExtensions,
		Meshes: lp.ExtraMeshExtensions,
	})
}

func (lp *LoaderParameters) Targets() loader.Targets {
	return loader.Targets{Image: lp.ImageTarget, Mesh: lp.MeshTarget}
}

func (lp *LoaderParameters) Print(w io.Writer) {
	t := lp.Targets()
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", lp.Title)
	fmt.Fprintf(w, "[%v]\t\t\t= All\n", lp.All)
	fmt.Fprintf(w, "[%s]\t\t\t= Image Target\n", orDefault(t.Image, formats.Image.Target()))
	fmt.Fprintf(w, "[%s]\t\t\t= Mesh Target\n", orDefault(t.Mesh, formats.Mesh.Target()))
	fmt.Fprintf(w, "%v\t= Extra Image Extensions\n", lp.ExtraImageExtensions)
	fmt.Fprintf(w, "%v\t= Extra Mesh Extensions\n", lp.ExtraMeshExtensions)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
