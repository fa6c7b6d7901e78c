package store

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// CSVHeader is the column order of the flat export.
var CSVHeader = []string{"id", "name", "designation", "email", "bio", "research", "publications", "teaching", "specialization", "profile_url"}

// Export regenerates the CSV and JSON snapshots of the whole table.
func (s *Store) Export(ctx context.Context, csvPath, jsonPath string) error {
	profiles, err := s.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if profiles == nil {
		profiles = []Profile{}
	}
	if err := WriteCSV(csvPath, profiles); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	if err := WriteJSON(jsonPath, profiles); err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	return nil
}

func WriteCSV(path string, profiles []Profile) error {
	if err := ensureParent(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(CSVHeader); err != nil {
		return err
	}
	for _, p := range profiles {
		if err := w.Write([]string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Designation,
			p.Email,
			p.Bio,
			p.Research,
			p.Publications,
			p.Teaching,
			p.Specialization,
			p.ProfileURL,
		}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func WriteJSON(path string, profiles []Profile) error {
	if err := ensureParent(path); err != nil {
		return err
	}
	data, err := json.MarshalIndent(profiles, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadJSON reads a JSON export back into memory. Keys that are not profile
// columns are ignored.
func LoadJSON(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var profiles []Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return profiles, nil
}

func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
