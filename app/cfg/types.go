package cfg

// Mode is the phase a run executes: download raw documents or parse the ones
// already stored.
type Mode string

const (
	ModeDownload Mode = "download"
	ModeParse    Mode = "parse"
)

type Cfg struct {
	// Run selection
	Source       string // "praza" or "nosdiario"
	Mode         Mode
	DownloadFrom string   // "category" or "rss" (download mode)
	ParseTarget  string   // single file to parse, empty for all (parse mode)
	Categories   []string // praza categories, empty for all

	// Paths
	ConfigFile string
	DataDir    string
	CorpusDir  string

	// Application metadata
	UserAgent string
	LogLevel  string
	Version   string
}
