package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultListingURLs are the DA-IICT pages that enumerate faculty cards.
var DefaultListingURLs = []string{
	"https://www.daiict.ac.in/faculty",
	"https://www.daiict.ac.in/adjunct-faculty",
	"https://www.daiict.ac.in/adjunct-faculty-international",
	"https://www.daiict.ac.in/professor-practice",
	"https://www.daiict.ac.in/distinguished-professor",
}

type Config struct {
	DataDir     string
	DatabaseURL string
	CSVPath     string
	JSONPath    string

	ListingURLs   []string
	Browser       string
	Headless      bool
	UserAgent     string
	ListWait      time.Duration
	SettleDelay   time.Duration
	RespectRobots bool

	Port string

	AIProvider   string
	GeminiAPIKey string
	GeminiModel  string
}

// Load reads configuration from the environment. A .env file in the working
// directory is honoured if present; real environment variables win over it.
func Load() Config {
	_ = godotenv.Load()

	dataDir := getenv("DATA_DIR", "Scraped_data")
	cfg := Config{
		DataDir:       dataDir,
		DatabaseURL:   getenv("DATABASE_URL", filepath.Join(dataDir, "faculty.db")),
		CSVPath:       getenv("CSV_PATH", filepath.Join(dataDir, "final_faculty_data.csv")),
		JSONPath:      getenv("JSON_PATH", filepath.Join(dataDir, "final_faculty_data.json")),
		ListingURLs:   splitList(os.Getenv("LISTING_URLS")),
		Browser:       strings.ToLower(getenv("BROWSER", "chrome")),
		Headless:      getbool("HEADLESS", true),
		UserAgent:     getenv("USER_AGENT", "faculty-finder-bot/1.0"),
		ListWait:      getduration("LIST_WAIT", 8*time.Second),
		SettleDelay:   getduration("SETTLE_DELAY", 1200*time.Millisecond),
		RespectRobots: getbool("RESPECT_ROBOTS", false),
		Port:          getenv("PORT", "8000"),
		AIProvider:    strings.ToLower(os.Getenv("AI_PROVIDER")),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
	}
	if len(cfg.ListingURLs) == 0 {
		cfg.ListingURLs = append([]string(nil), DefaultListingURLs...)
	}
	return cfg
}

// EnsureDataDir creates the directory holding the database and exports.
func (c Config) EnsureDataDir() error {
	if c.DataDir == "" {
		return nil
	}
	return os.MkdirAll(c.DataDir, 0o755)
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getduration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
