package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/sftrender/pkg/math3d"
	"github.com/taigrr/sftrender/pkg/render"
)

// LoadGLTF loads a glTF or GLB file and returns its triangles plus the
// first image the document carries, decoded (nil if there is none or it
// cannot be read).
//
// Every triangle primitive of every mesh is appended in document order.
// Node transforms are not applied. glTF UVs already have V=0 at the top
// of the image and are kept as is. Primitives without TEXCOORD_0 get
// (0, 0) UVs; non-triangle primitives are skipped.
func LoadGLTF(path string) (*Mesh, image.Image, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for _, m := range doc.Meshes {
		if err := appendGLTFMesh(doc, m, mesh); err != nil {
			return nil, nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	mesh.CalculateBounds()

	img, err := firstImage(doc, filepath.Dir(path))
	if err != nil {
		render.Logger().Warn("gltf image skipped", "path", path, "err", err)
		img = nil
	}

	render.Logger().Debug("gltf loaded",
		"meshes", len(doc.Meshes), "triangles", len(mesh.Triangles), "image", img != nil)
	return mesh, img, nil
}

func appendGLTFMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for i, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			render.Logger().Warn("gltf primitive skipped", "mesh", m.Name, "primitive", i, "mode", prim.Mode)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var uvs [][2]float32
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		} else {
			render.Logger().Warn("gltf primitive has no uvs", "mesh", m.Name, "primitive", i)
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, vertices are sequential triangles
			indices = make([]uint32, len(positions))
			for k := range indices {
				indices[k] = uint32(k)
			}
		}

		for k := 0; k+2 < len(indices); k += 3 {
			var t Triangle
			for c := range 3 {
				idx := int(indices[k+c])
				if idx >= len(positions) {
					return fmt.Errorf("index %d of %d: %w", idx, len(positions), ErrBadIndex)
				}
				p := positions[idx]
				t.Pos[c] = math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))
				if idx < len(uvs) {
					t.UV[c] = math3d.V2(float64(uvs[idx][0]), float64(uvs[idx][1]))
				}
			}
			mesh.Triangles = append(mesh.Triangles, t)
		}
	}
	return nil
}

// firstImage decodes the first image of doc, embedded in a buffer view, in
// a data URI or in a file next to the document.
func firstImage(doc *gltf.Document, dir string) (image.Image, error) {
	if len(doc.Images) == 0 {
		return nil, nil
	}
	img := doc.Images[0]

	var data []byte
	var err error
	switch {
	case img.BufferView != nil:
		data, err = modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
	case img.IsEmbeddedResource():
		data, err = img.MarshalData()
	case img.URI != "":
		var name string
		name, err = url.PathUnescape(img.URI)
		if err == nil {
			data, err = os.ReadFile(filepath.Join(dir, name))
		}
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return decoded, nil
}
