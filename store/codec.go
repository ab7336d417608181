package store

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/akmonengine/pivot/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

const version uint16 = 1

var magic = [4]byte{'P', 'V', 'M', 'H'}

// header precedes the name and the payload. All values are little-endian.
type header struct {
	Magic     [4]byte
	Version   uint16
	NameLen   uint16
	ID        [16]byte
	Vertices  uint32
	Normals   uint32
	Tangents  uint32
	UVs       uint32
	Triangles uint32
}

func (h header) payloadSize() int64 {
	return int64(h.NameLen) +
		int64(h.Vertices)*24 +
		int64(h.Normals)*24 +
		int64(h.Tangents)*32 +
		int64(h.UVs)*16 +
		int64(h.Triangles)*4
}

// Encode writes m in the store's binary format
func Encode(w io.Writer, m *actor.Mesh) error {
	if len(m.Name) > 0xFFFF {
		return fmt.Errorf("mesh name too long (%d bytes)", len(m.Name))
	}

	bw := bufio.NewWriter(w)
	h := header{
		Magic:     magic,
		Version:   version,
		NameLen:   uint16(len(m.Name)),
		ID:        m.ID,
		Vertices:  uint32(len(m.Vertices)),
		Normals:   uint32(len(m.Normals)),
		Tangents:  uint32(len(m.Tangents)),
		UVs:       uint32(len(m.UVs)),
		Triangles: uint32(len(m.Triangles)),
	}

	for _, data := range []any{h, []byte(m.Name), m.Vertices, m.Normals, m.Tangents, m.UVs, m.Triangles} {
		if err := binary.Write(bw, binary.LittleEndian, data); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Decode reads a mesh written by Encode
func Decode(data []byte) (*actor.Mesh, error) {
	r := bytes.NewReader(data)

	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("truncated header: %w", err)
	}
	if h.Magic != magic {
		return nil, fmt.Errorf("invalid header %q", h.Magic[:])
	}
	if h.Version != version {
		return nil, fmt.Errorf("unsupported version %d", h.Version)
	}
	if h.payloadSize() != int64(r.Len()) {
		return nil, fmt.Errorf("payload is %d bytes, header announces %d", r.Len(), h.payloadSize())
	}

	name := make([]byte, h.NameLen)
	m := &actor.Mesh{
		ID:        uuid.UUID(h.ID),
		Vertices:  make([]mgl64.Vec3, h.Vertices),
		Normals:   make([]mgl64.Vec3, h.Normals),
		Tangents:  make([]mgl64.Vec4, h.Tangents),
		UVs:       make([]mgl64.Vec2, h.UVs),
		Triangles: make([]uint32, h.Triangles),
	}

	for _, data := range []any{name, m.Vertices, m.Normals, m.Tangents, m.UVs, m.Triangles} {
		if err := binary.Read(r, binary.LittleEndian, data); err != nil {
			return nil, err
		}
	}
	m.Name = string(name)

	if len(m.Normals) == 0 {
		m.Normals = nil
	}
	if len(m.Tangents) == 0 {
		m.Tangents = nil
	}
	if len(m.UVs) == 0 {
		m.UVs = nil
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.RecalculateBounds()

	return m, nil
}

// ReadFile decodes the mesh stored at path
func ReadFile(path string) (*actor.Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}

	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", path, err)
	}

	return m, nil
}
