package trends

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	currentDataFile = "current_data.json"
	lastRunFile     = "last_run_data.json"
	trendDataFile   = "trendData.json"
	insightsFile    = "aiTrendInsights.json"
)

// insightsArtifact is the analysis half of a report, published separately
// from the raw trend data so the dashboard can load them independently.
type insightsArtifact struct {
	HashtagTopics    []Topic         `json:"hashtag_topics"`
	TrendPredictions []Prediction    `json:"trend_predictions"`
	Recommendations  Recommendations `json:"content_recommendations"`
	HashtagClusters  []Cluster       `json:"hashtag_clusters"`
	EmergingTrends   []EmergingTrend `json:"emerging_trends"`
	CategoryAnalysis []CategoryStat  `json:"category_analysis"`
	LastUpdated      string          `json:"last_updated,omitempty"`
}

// Store persists snapshots and reports on disk: raw collection state under
// the data dir, published dashboard artifacts under the docs dir.
type Store struct {
	dataDir string
	docsDir string
}

// NewStore creates a Store rooted at the two directories.
func NewStore(dataDir, docsDir string) *Store {
	return &Store{dataDir: dataDir, docsDir: docsDir}
}

// EnsureDirs creates the data and docs directories if missing.
func (st *Store) EnsureDirs() error {
	for _, dir := range []string{st.dataDir, st.docsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return nil
}

// SaveSnapshot writes the snapshot as the current data and keeps a
// timestamped copy for history.
func (st *Store) SaveSnapshot(snap Snapshot) error {
	stamp := time.Now().Format("20060102_150405")
	archived := filepath.Join(st.dataDir, fmt.Sprintf("trend_data_%s.json", stamp))
	if err := writeJSON(archived, snap); err != nil {
		return err
	}
	return writeJSON(filepath.Join(st.dataDir, currentDataFile), snap)
}

// LoadCurrent reads the most recent snapshot. A missing file is reported
// as ErrNoSnapshot.
func (st *Store) LoadCurrent() (Snapshot, error) {
	return readSnapshot(filepath.Join(st.dataDir, currentDataFile))
}

// LoadLastRun reads the snapshot from the previous run, used for change
// detection. A missing file is reported as ErrNoSnapshot.
func (st *Store) LoadLastRun() (Snapshot, error) {
	return readSnapshot(filepath.Join(st.dataDir, lastRunFile))
}

// SaveLastRun records the snapshot as the change-detection baseline.
func (st *Store) SaveLastRun(snap Snapshot) error {
	return writeJSON(filepath.Join(st.dataDir, lastRunFile), snap)
}

// SaveReport publishes the report as the two dashboard artifacts: the
// enriched trend data and the derived insights.
func (st *Store) SaveReport(report Report) error {
	data := Snapshot{
		Hashtags7d:    report.Hashtags7d,
		Hashtags30d:   report.Hashtags30d,
		TrendingSongs: report.TrendingSongs,
		BreakoutSongs: report.BreakoutSongs,
		LastUpdated:   report.LastUpdated,
	}
	if err := writeJSON(filepath.Join(st.docsDir, trendDataFile), data); err != nil {
		return err
	}

	insights := insightsArtifact{
		HashtagTopics:    report.HashtagTopics,
		TrendPredictions: report.TrendPredictions,
		Recommendations:  report.Recommendations,
		HashtagClusters:  report.HashtagClusters,
		EmergingTrends:   report.EmergingTrends,
		CategoryAnalysis: report.CategoryAnalysis,
		LastUpdated:      report.LastUpdated,
	}
	return writeJSON(filepath.Join(st.docsDir, insightsFile), insights)
}

// ArtifactPaths lists the published files, in the order they are written.
// Used by publishers to know what to commit.
func (st *Store) ArtifactPaths() []string {
	return []string{
		filepath.Join(st.docsDir, trendDataFile),
		filepath.Join(st.docsDir, insightsFile),
	}
}

// ReadSnapshot loads a snapshot from an arbitrary path, for analyzing a
// previously collected file.
func ReadSnapshot(path string) (Snapshot, error) {
	return readSnapshot(path)
}

func readSnapshot(path string) (Snapshot, error) {
	var snap Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return snap, fmt.Errorf("%w: %s", ErrNoSnapshot, path)
		}
		return snap, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("unmarshal snapshot %s: %w", path, err)
	}
	return snap, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
