//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

// CurrentConfiguration - everything a run needs to know; built once at launch and handed to the components
type CurrentConfiguration struct {
	AddedK            int
	BlackAndWhite     bool
	ChartHeight       string
	ChartWidth        string
	DocTextFile       string
	EchoLog           int // 0: "none", 1: "terse", 2: "prolix"
	ExportFile        string
	GoodMass          float64
	Gzip              bool
	HostIP            string
	HostPort          int
	InputFormat       string // "segan" or "mallet"
	Jitter            int
	LabelsFromLedger  bool
	LDAvisFile        string
	LedgerFile        string
	LedgerType        string // "none", "sqlite", "pgsql"
	LogLevel          int
	MalletDocTopics   string
	MalletWordCounts  string
	MalletWordWeights string
	MapFile           string
	Milestones        []int
	Mode              string
	NewK              int
	OutputDir         string
	PGLogin           PostgresLogin
	PhiFile           string
	PriorFile         string
	ProfileCPU        bool
	ProfileMEM        bool
	ReconcileStrat    string
	Seed              int64
	TermFreqFile      string
	ThetaFile         string
	TopN              int
	VisFile           string
	VocabFile         string
	VocabOutFile      string
}

type PostgresLogin struct {
	Host   string
	Port   int
	User   string
	Pass   string
	DBName string
}
