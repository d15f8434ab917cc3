// Package artifacts manages per-project media storage: uploaded sources,
// the finalized video, and its subtitle file. Projects live as
// project_<id> directories under the media root.
package artifacts

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"clipforge/internal/config"
	"clipforge/internal/fileutil"
	"clipforge/internal/logging"
	"clipforge/internal/services"
)

const (
	// StagedVideoName is the fixed name the transcoder writes into staging.
	StagedVideoName = "processed_video.mp4"
	// StagedSubtitlesName is the fixed name the transcriber writes into staging.
	StagedSubtitlesName = "subtitles.srt"
)

// Entry describes one stored artifact.
type Entry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// FinalizeResult reports where finalized artifacts landed.
type FinalizeResult struct {
	VideoPath     string
	SubtitlesPath string
}

// Manager owns the media directory layout.
type Manager struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewManager(cfg *config.Config, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "artifacts"),
	}
}

// ProjectDir returns the storage directory for a project.
func (m *Manager) ProjectDir(projectID string) string {
	return filepath.Join(m.cfg.Paths.MediaDir, "project_"+projectID)
}

// Upload stores a source file under the project directory. The name is
// sanitized to its base component so callers cannot escape the project
// folder.
func (m *Manager) Upload(projectID, name string, reader io.Reader) (Entry, error) {
	if strings.TrimSpace(projectID) == "" {
		return Entry{}, services.Wrap(services.ErrValidation, "artifacts", "upload", "project id is required", nil)
	}
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return Entry{}, services.Wrap(services.ErrValidation, "artifacts", "upload", "file name is required", nil)
	}

	dir := m.ProjectDir(projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Entry{}, services.Wrap(services.ErrStorage, "artifacts", "upload", "create project directory", err)
	}

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return Entry{}, services.Wrap(services.ErrStorage, "artifacts", "upload", "create artifact file", err)
	}
	size, err := io.Copy(file, reader)
	closeErr := file.Close()
	if err != nil {
		os.Remove(path)
		return Entry{}, services.Wrap(services.ErrStorage, "artifacts", "upload", "write artifact", err)
	}
	if closeErr != nil {
		os.Remove(path)
		return Entry{}, services.Wrap(services.ErrStorage, "artifacts", "upload", "close artifact", closeErr)
	}

	m.logger.Info("artifact uploaded",
		logging.String(logging.FieldProjectID, projectID),
		logging.String("name", name),
		logging.Int64("bytes", size))

	return Entry{Name: name, URL: m.artifactURL(projectID, name), Size: size}, nil
}

// List returns the project's stored artifacts sorted by name. A project
// with no directory yet lists as empty rather than erroring.
func (m *Manager) List(projectID string) ([]Entry, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, services.Wrap(services.ErrValidation, "artifacts", "list", "project id is required", nil)
	}
	dirEntries, err := os.ReadDir(m.ProjectDir(projectID))
	if os.IsNotExist(err) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, services.Wrap(services.ErrStorage, "artifacts", "list", "read project directory", err)
	}
	entries := make([]Entry, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || strings.HasSuffix(dirEntry.Name(), ".lock") {
			continue
		}
		info, err := dirEntry.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name: dirEntry.Name(),
			URL:  m.artifactURL(projectID, dirEntry.Name()),
			Size: info.Size(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Finalize moves the staged encode into the project directory under
// newName, bringing subtitles along when present. An empty newName keeps
// the staged default. A per-project lock serializes concurrent
// finalizations.
func (m *Manager) Finalize(projectID, newName string) (FinalizeResult, error) {
	if strings.TrimSpace(projectID) == "" {
		return FinalizeResult{}, services.Wrap(services.ErrValidation, "artifacts", "finalize", "project id is required", nil)
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		newName = StagedVideoName
	}
	newName = filepath.Base(newName)
	if newName == "." || newName == string(filepath.Separator) {
		return FinalizeResult{}, services.Wrap(services.ErrValidation, "artifacts", "finalize",
			fmt.Sprintf("invalid target name %q", newName), nil)
	}
	if !strings.HasSuffix(strings.ToLower(newName), ".mp4") {
		newName += ".mp4"
	}

	stagedVideo := filepath.Join(m.cfg.Paths.StagingDir, StagedVideoName)
	if _, err := os.Stat(stagedVideo); err != nil {
		return FinalizeResult{}, services.Wrap(services.ErrNotFound, "artifacts", "finalize",
			"no processed video in staging", err)
	}

	dir := m.ProjectDir(projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return FinalizeResult{}, services.Wrap(services.ErrStorage, "artifacts", "finalize", "create project directory", err)
	}

	lock := flock.New(filepath.Join(dir, ".finalize.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return FinalizeResult{}, services.Wrap(services.ErrStorage, "artifacts", "finalize", "acquire project lock", err)
	}
	if !locked {
		return FinalizeResult{}, services.Wrap(services.ErrStorage, "artifacts", "finalize",
			fmt.Sprintf("project %s is already being finalized", projectID), nil)
	}
	defer lock.Unlock()

	videoPath := filepath.Join(dir, newName)
	if err := fileutil.MoveFile(stagedVideo, videoPath); err != nil {
		return FinalizeResult{}, services.Wrap(services.ErrStorage, "artifacts", "finalize", "move processed video", err)
	}

	result := FinalizeResult{VideoPath: videoPath}

	stagedSubs := filepath.Join(m.cfg.Paths.StagingDir, StagedSubtitlesName)
	if _, err := os.Stat(stagedSubs); err == nil {
		subsName := strings.TrimSuffix(newName, filepath.Ext(newName)) + ".srt"
		subsPath := filepath.Join(dir, subsName)
		if err := fileutil.MoveFile(stagedSubs, subsPath); err != nil {
			// The video already moved; report the partial state rather than
			// pretending the whole finalize failed.
			return result, services.Wrap(services.ErrStorage, "artifacts", "finalize",
				"video finalized but subtitles move failed", err)
		}
		result.SubtitlesPath = subsPath
	}

	m.logger.Info("project finalized",
		logging.String(logging.FieldProjectID, projectID),
		logging.String("video", result.VideoPath),
		logging.Bool("subtitles", result.SubtitlesPath != ""),
		logging.String(logging.FieldEventType, "project_finalized"))

	return result, nil
}

// Subtitles returns the contents of a project's subtitle file.
func (m *Manager) Subtitles(projectID, videoName string) (string, error) {
	if strings.TrimSpace(projectID) == "" {
		return "", services.Wrap(services.ErrValidation, "artifacts", "subtitles", "project id is required", nil)
	}
	name := strings.TrimSuffix(filepath.Base(videoName), filepath.Ext(videoName)) + ".srt"
	data, err := os.ReadFile(filepath.Join(m.ProjectDir(projectID), name))
	if os.IsNotExist(err) {
		return "", services.Wrap(services.ErrNotFound, "artifacts", "subtitles",
			fmt.Sprintf("no subtitle file %s", name), nil)
	}
	if err != nil {
		return "", services.Wrap(services.ErrStorage, "artifacts", "subtitles", "read subtitle file", err)
	}
	return string(data), nil
}

func (m *Manager) artifactURL(projectID, name string) string {
	base := strings.TrimRight(m.cfg.Paths.MediaBaseURL, "/")
	if base == "" {
		return filepath.ToSlash(filepath.Join(m.ProjectDir(projectID), name))
	}
	return base + "/project_" + projectID + "/" + name
}
