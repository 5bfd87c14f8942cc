//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

import "time"

const (
	MYNAME    = "Topic Distillery"
	SHORTNAME = "TDS"
	VERSION   = "0.3.1"

	BLACKANDWHITE       = false
	CONFIGALTAPTH       = "%s/.config/" // %s = os.UserHomeDir()
	CONFIGBASIC         = "tds-conf.yaml"
	DEFAULTECHOLOGLEVEL = 0
	DEFAULTGOLOGLEVEL   = 2
	ENVPREFIX           = "TDS"
	MAXECHOREQPERSECOND = 40
	MAXPOSTBODY         = "16M"
	SERVEDFROMHOST      = "127.0.0.1"
	SERVEDFROMPORT      = 8050
	TIMEOUTRD           = 15 * time.Second
	TIMEOUTWR           = 120 * time.Second
	USEGZIP             = false

	DEFAULTPSQLHOST = "127.0.0.1"
	DEFAULTPSQLUSER = "tds_wr"
	DEFAULTPSQLPORT = 5432
	DEFAULTPSQLDB   = "topicdistillery"
)

// run modes
const (
	MODEVIS    = "vis"
	MODEPRIOR  = "prior"
	MODELDAVIS = "ldavis"
	MODESERVE  = "serve"
	MODERUNS   = "runs"
	MODEDEF    = MODEVIS
)

// input formats
const (
	FMTSEGAN  = "segan"
	FMTMALLET = "mallet"
)

// ledger backends
const (
	LEDGERNONE   = "none"
	LEDGERSQLITE = "sqlite"
	LEDGERPGSQL  = "pgsql"
)

// default input and output file names; the segan names match what the sampler writes into its results folder
const (
	PHIFILE      = "phis.txt"
	THETAFILE    = "thetas.txt"
	VOCABFILE    = "corpus.wvoc"
	TFFILE       = "corpus.dat"
	DOCTEXTFILE  = "text.txt"
	EXPORTFILE   = "export.json"
	PRIORFILE    = "new_phis.txt"
	VISFILE      = "data.json"
	VOCABOUTFILE = "vocab.json"
	LDAVISFILE   = "ldavis.json"
	MAPFILE      = "topicmap.html"
	LEDGERFILE   = "tds-ledger.db"
	OUTPUTDIR    = "."
)
