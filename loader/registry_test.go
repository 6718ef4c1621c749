package loader

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/notargets/itkloaders/formats"
)

func quietLogger() *zap.Logger {
	return zap.NewNop()
}

func noopLoader(ctx context.Context, src io.Reader) (*Result, error) {
	return &Result{}, nil
}

type recordingHost struct {
	calls [][2]string
}

func (h *recordingHost) UseLoader(fn Loader, fromExt, toExt string) {
	h.calls = append(h.calls, [2]string{fromExt, toExt})
}

func TestUseLoaders(t *testing.T) {
	h := &recordingHost{}
	UseLoaders(h, Toolkit{})
	require.Len(t, h.calls, len(formats.ImageExtensions())+len(formats.MeshExtensions()))
	assert.Equal(t, [2]string{"bmp", "nii"}, h.calls[0])
	assert.Equal(t, [2]string{"vtk", "mz3"}, h.calls[len(h.calls)-1])
	for _, c := range h.calls {
		assert.NotEqual(t, "nii.gz", c[0], "default set must leave nii.gz to the host")
	}
}

func TestUseAllLoaders(t *testing.T) {
	r := NewRegistry(quietLogger())
	UseAllLoaders(r, Toolkit{})

	// vtk sits in both lists, the mesh loader is registered last
	e, ok := r.Lookup("cow.vtk")
	require.True(t, ok)
	assert.Equal(t, "mz3", e.To)

	e, ok = r.Lookup("brain.NII.GZ")
	require.True(t, ok)
	assert.Equal(t, "nii.gz", e.From)
	assert.Equal(t, "nii", e.To)

	e, ok = r.Lookup("LIDC2.mha")
	require.True(t, ok)
	assert.Equal(t, "nii", e.To)

	_, ok = r.Lookup("scan.x.y")
	assert.False(t, ok)

	// One entry per distinct extension
	assert.Equal(t, len(formats.AllImageExtensions())+len(formats.AllMeshExtensions())-1, r.Len())
}

func TestUseLoaderSetTargets(t *testing.T) {
	h := &recordingHost{}
	UseLoaderSet(h, Toolkit{}, formats.Set{Images: []string{"mha"}, Meshes: []string{"stl"}},
		Targets{Mesh: "gii"})
	assert.Equal(t, [][2]string{{"mha", "nii"}, {"stl", "gii"}}, h.calls)
}

func TestRegistryLoad(t *testing.T) {
	fake := &fakeToolkit{}
	r := NewRegistry(quietLogger())
	UseAllLoaders(r, fake.toolkit())

	res, to, err := r.Load(context.Background(), "scan.nii.gz", strings.NewReader("v"))
	require.NoError(t, err)
	assert.Equal(t, "nii", to)
	assert.Equal(t, []byte("image:v"), res.NIfTI)
	assert.Equal(t, "input.nii.gz", fake.files[0].Path)

	res, to, err = r.Load(context.Background(), "rac.vtk", strings.NewReader("abc"))
	require.NoError(t, err)
	assert.Equal(t, "mz3", to)
	assert.Equal(t, formats.Mesh, res.Kind)
}

func TestRegistryLoadUnsupported(t *testing.T) {
	r := NewRegistry(quietLogger())
	UseLoaders(r, Toolkit{})

	_, _, err := r.Load(context.Background(), "notes.txt", strings.NewReader(""))
	var unsupported *UnsupportedError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "txt", unsupported.Token)
	assert.Equal(t, "notes.txt", unsupported.Filename)
}

func TestRegistryLoadError(t *testing.T) {
	r := NewRegistry(quietLogger())
	UseLoaders(r, Toolkit{})
	_, _, err := r.Load(context.Background(), "a.mha", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoReader)
}

func TestRegistryReplaceAndEntries(t *testing.T) {
	r := NewRegistry(nil)
	r.UseLoader(noopLoader, "STL", "mz3")
	r.UseLoader(noopLoader, "bmp", "nii")
	r.UseLoader(noopLoader, "stl", "gii")

	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "bmp", entries[0].From)
	assert.Equal(t, formats.Image, entries[0].Kind)
	assert.Equal(t, "stl", entries[1].From)
	assert.Equal(t, "gii", entries[1].To)
	// gii is not a default target, so the kind cannot be inferred
	assert.Equal(t, formats.Unknown, entries[1].Kind)
}

func TestRegistryEntryKinds(t *testing.T) {
	r := NewRegistry(quietLogger())
	UseLoaderSet(r, Toolkit{}, formats.Set{Images: []string{"vtk", "mha"}, Meshes: []string{"vtk", "stl"}},
		Targets{Mesh: "gii"})

	kinds := make(map[string]formats.Kind)
	for _, e := range r.Entries() {
		kinds[e.From] = e.Kind
	}
	assert.Equal(t, map[string]formats.Kind{
		"mha": formats.Image,
		"stl": formats.Mesh,
		"vtk": formats.Mesh,
	}, kinds)
}

func TestRegistryIgnoresNilLoader(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewRegistry(zap.New(core))
	r.UseLoader(noopLoader, "mha", "nii")
	r.UseLoader(nil, "mha", "nii")
	r.UseLoader(nil, "stl", "mz3")

	assert.Equal(t, 1, r.Len())
	_, ok := r.Lookup("b.stl")
	assert.False(t, ok)

	// The earlier registration survives and still loads
	res, to, err := r.Load(context.Background(), "a.mha", strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Equal(t, "nii", to)
	assert.Equal(t, 2, logs.FilterMessage("nil loader ignored").Len())
}

func TestRegistryLogsLoadFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewRegistry(zap.New(core))
	UseLoaders(r, Toolkit{})
	_, _, err := r.Load(context.Background(), "a.mha", strings.NewReader(""))
	require.Error(t, err)
	require.Equal(t, 1, logs.FilterMessage("load failed").Len())
	entry := logs.FilterMessage("load failed").All()[0]
	assert.Equal(t, "a.mha", entry.ContextMap()["file"])
}
