package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/roadgen/internal/logger"
	"github.com/Faultbox/roadgen/internal/road"
	"github.com/Faultbox/roadgen/internal/sweep"
	"github.com/Faultbox/roadgen/pkg/formats"
)

// OBJSink is a road.MeshSink that writes every submitted mesh as an OBJ
// file under Dir. Empty meshes are skipped.
type OBJSink struct {
	Dir     string
	Written []string
}

// FileName maps a mesh name such as "bridge/road" to "bridge_road.obj".
func FileName(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(name) + ".obj"
}

// Submit writes mesh to Dir.
func (s *OBJSink) Submit(name string, mesh *sweep.Mesh) error {
	if mesh.IsEmpty() {
		return nil
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(s.Dir, FileName(name))
	if err := formats.WriteOBJFile(path, road.MeshToOBJ(name, mesh)); err != nil {
		return fmt.Errorf("export %s: %w", name, err)
	}
	s.Written = append(s.Written, path)
	logger.Debug("mesh exported", zap.String("path", path), zap.Int("vertices", mesh.VertexCount()))
	return nil
}

// Export rebuilds a and writes its meshes to the output directory. With
// merge set, road and pillars go to one file.
func (s *Scene) Export(a *road.Asset) (road.Result, []string, error) {
	sink := &OBJSink{Dir: s.cfg.Output.Dir}
	if !s.cfg.Output.Merge {
		a.Attach(sink)
	}
	res, err := a.Rebuild(s.World)
	if err != nil {
		return res, sink.Written, err
	}
	if s.cfg.Output.Merge {
		if err := sink.Submit(a.MeshName("combined"), res.Combined()); err != nil {
			return res, sink.Written, err
		}
	}
	return res, sink.Written, nil
}
