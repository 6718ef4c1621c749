package loader

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/notargets/itkloaders/formats"
)

var (
	ErrNoReader    = errors.New("no reader configured")
	ErrNoConverter = errors.New("no converter configured")
)

// BinaryFile is the in-memory file handed to the toolkit. The Path carries
// the extension hint the toolkit uses to pick its decoder.
type BinaryFile struct {
	Data []byte
	Path string
}

// Image and Mesh are the toolkit's decoded objects. They are only passed
// through from a reader to the matching converter.
type (
	Image any
	Mesh  any
)

type ImageReader interface {
	ReadImage(ctx context.Context, file BinaryFile) (Image, error)
}

type MeshReader interface {
	ReadMesh(ctx context.Context, file BinaryFile) (Mesh, error)
}

type ImageConverter interface {
	// ImageToNIfTI encodes a decoded image as a NIfTI byte stream
	ImageToNIfTI(img Image) ([]byte, error)
}

type MeshConverter interface {
	// MeshToMZ3 flattens a decoded mesh into triangle positions and indices
	MeshToMZ3(m Mesh) (positions []float32, indices []uint32, err error)
}

// Toolkit bundles the collaborators that do the actual decoding. Any member
// may be nil, loaders that need a missing member fail when called.
type Toolkit struct {
	ImageReader    ImageReader
	MeshReader     MeshReader
	ImageConverter ImageConverter
	MeshConverter  MeshConverter
}

// Result is what a loader hands back to the host. Image loaders fill NIfTI,
// mesh loaders fill Positions and Indices.
type Result struct {
	Kind      formats.Kind
	NIfTI     []byte
	Positions []float32
	Indices   []uint32
}

type Loader func(ctx context.Context, src io.Reader) (*Result, error)

// NewImageLoader returns a loader that reads ext through the toolkit and
// converts the image to NIfTI
func NewImageLoader(tk Toolkit, ext string) Loader {
	return func(ctx context.Context, src io.Reader) (res *Result, err error) {
		var (
			file BinaryFile
			img  Image
			nii  []byte
		)
		if tk.ImageReader == nil {
			return nil, loadError(formats.Image, ext, ErrNoReader)
		}
		if tk.ImageConverter == nil {
			return nil, loadError(formats.Image, ext, ErrNoConverter)
		}
		if file, err = newBinaryFile(ctx, src, ext); err != nil {
			return nil, loadError(formats.Image, ext, err)
		}
		if img, err = tk.ImageReader.ReadImage(ctx, file); err != nil {
			return nil, loadError(formats.Image, ext, err)
		}
		if nii, err = tk.ImageConverter.ImageToNIfTI(img); err != nil {
			return nil, loadError(formats.Image, ext, err)
		}
		return &Result{Kind: formats.Image, NIfTI: nii}, nil
	}
}

// NewMeshLoader returns a loader that reads ext through the toolkit and
// converts the mesh to MZ3 positions and indices
func NewMeshLoader(tk Toolkit, ext string) Loader {
	return func(ctx context.Context, src io.Reader) (res *Result, err error) {
		var (
			file BinaryFile
			m    Mesh
		)
		if tk.MeshReader == nil {
			return nil, loadError(formats.Mesh, ext, ErrNoReader)
		}
		if tk.MeshConverter == nil {
			return nil, loadError(formats.Mesh, ext, ErrNoConverter)
		}
		if file, err = newBinaryFile(ctx, src, ext); err != nil {
			return nil, loadError(formats.Mesh, ext, err)
		}
		if m, err = tk.MeshReader.ReadMesh(ctx, file); err != nil {
			return nil, loadError(formats.Mesh, ext, err)
		}
		res = &Result{Kind: formats.Mesh}
		if res.Positions, res.Indices, err = tk.MeshConverter.MeshToMZ3(m); err != nil {
			return nil, loadError(formats.Mesh, ext, err)
		}
		return
	}
}

// NewLoader picks the image or mesh loader for kind k
func NewLoader(tk Toolkit, k formats.Kind, ext string) Loader {
	if k == formats.Mesh {
		return NewMeshLoader(tk, ext)
	}
	return NewImageLoader(tk, ext)
}

func newBinaryFile(ctx context.Context, src io.Reader, ext string) (file BinaryFile, err error) {
	if err = ctx.Err(); err != nil {
		return
	}
	if src == nil {
		return file, errors.New("nil source")
	}
	if file.Data, err = readAll(src); err != nil {
		return
	}
	file.Path = "input." + ext
	return
}

// readAll takes the buffer directly when src already holds its bytes in
// memory
func readAll(src io.Reader) ([]byte, error) {
	if b, ok := src.(interface{ Bytes() []byte }); ok {
		return b.Bytes(), nil
	}
	return io.ReadAll(src)
}

func loadError(k formats.Kind, ext string, err error) error {
	return fmt.Errorf("%s loader %q: %w", k, ext, err)
}
