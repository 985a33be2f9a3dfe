package assets

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// dracoExtension is the glTF extension name for compressed geometry.
const dracoExtension = "KHR_draco_mesh_compression"

const (
	glbMagic     = 0x46546C67 // "glTF" little-endian
	glbChunkJSON = 0x4E4F534A // "JSON"
)

// manifest is the subset of a glTF document the engine needs: enough to
// count drawable content and detect declared extensions. Buffers and images
// stay opaque; the render backend consumes the descriptor, not raw geometry.
type manifest struct {
	Asset struct {
		Version string `json:"version"`
	} `json:"asset"`
	Meshes []struct {
		Name string `json:"name"`
	} `json:"meshes"`
	Materials []struct {
		Name string `json:"name"`
	} `json:"materials"`
	ExtensionsUsed     []string `json:"extensionsUsed"`
	ExtensionsRequired []string `json:"extensionsRequired"`
}

// decodeContainer parses either a GLB binary container or a bare glTF JSON
// document and returns its manifest.
func decodeContainer(payload []byte) (*manifest, error) {
	if len(payload) == 0 {
		return nil, errors.New("empty model payload")
	}
	if isGLB(payload) {
		doc, err := extractGLBJSON(payload)
		if err != nil {
			return nil, err
		}
		return decodeManifest(doc)
	}
	return decodeManifest(payload)
}

func isGLB(payload []byte) bool {
	return len(payload) >= 12 && binary.LittleEndian.Uint32(payload[0:4]) == glbMagic
}

func extractGLBJSON(payload []byte) ([]byte, error) {
	if len(payload) < 12 {
		return nil, errors.New("glb header truncated")
	}
	version := binary.LittleEndian.Uint32(payload[4:8])
	if version != 2 {
		return nil, fmt.Errorf("unsupported glb version %d", version)
	}
	declared := binary.LittleEndian.Uint32(payload[8:12])
	if int(declared) > len(payload) {
		return nil, fmt.Errorf("glb truncated: header declares %d bytes, have %d", declared, len(payload))
	}

	offset := 12
	for offset+8 <= len(payload) {
		chunkLen := binary.LittleEndian.Uint32(payload[offset : offset+4])
		chunkType := binary.LittleEndian.Uint32(payload[offset+4 : offset+8])
		offset += 8
		if offset+int(chunkLen) > len(payload) {
			return nil, errors.New("glb chunk truncated")
		}
		if chunkType == glbChunkJSON {
			return payload[offset : offset+int(chunkLen)], nil
		}
		offset += int(chunkLen)
	}
	return nil, errors.New("glb missing JSON chunk")
}

func decodeManifest(doc []byte) (*manifest, error) {
	var m manifest
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, fmt.Errorf("parse gltf document: %w", err)
	}
	if !strings.HasPrefix(m.Asset.Version, "2") {
		return nil, fmt.Errorf("unsupported gltf version %q", m.Asset.Version)
	}
	if len(m.Meshes) == 0 {
		return nil, errors.New("model contains no meshes")
	}
	return &m, nil
}

// declaresDraco reports whether the asset requires or uses compressed
// geometry.
func (m *manifest) declaresDraco() bool {
	for _, ext := range m.ExtensionsRequired {
		if ext == dracoExtension {
			return true
		}
	}
	for _, ext := range m.ExtensionsUsed {
		if ext == dracoExtension {
			return true
		}
	}
	return false
}
