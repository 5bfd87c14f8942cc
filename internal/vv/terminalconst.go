//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	TERMINALTEXT = `Copyright (C) %s / %s
      %s

      This program comes with ABSOLUTELY NO WARRANTY; without even the
      implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.

      This is free software, and you are welcome to redistribute it and/or
      modify it under the terms of the GNU General Public License version 3.`

	PROJYEAR = "2024"
	PROJAUTH = "E. Gunderson"
	PROJURL  = "https://github.com/e-gun/TopicDistillery"

	HELPTEXTTEMPLATE = `S3usageS0: C5TopicDistilleryC0 [C1-m modeC0] [options]

S3modesS0:
   C3visC0          rank, reconcile and project a model; write "C3{{.visfile}}C0" and "C3{{.mapfile}}C0"
   C3priorC0        turn an editor export into a prior topic file: "C3{{.priorfile}}C0"
   C3ldavisC0       write the pyLDAvis input: "C3{{.ldavisfile}}C0"
   C3serveC0        serve the payloads at C3{{.host}}:{{.port}}C0
   C3runsC0         list the runs stored in the ledger

S3command line optionsS0:
   C1-bwC0          disable color output in the console
   C1-cC0 C2{file}C0    read a yaml or json configuration file [C6defaultC0: C3{{.conffile}}C0]
   C1-dtC0 C2{file}C0   document text [C6currentC0: C3{{.doctext}}C0]
   C1-elC0 C2{num}C0    set echo server log level (C10-3C0) [C6currentC0: C3{{.echoll}}C0]
   C1-exC0 C2{file}C0   editor export [C6currentC0: C3{{.export}}C0]
   C1-glC0 C2{num}C0    set log level (C1-1-5C0) [C6currentC0: C3{{.tdsll}}C0]
   C1-gmC0 C2{num}C0    share of the prior mass given to kept words [C6currentC0: C3{{.goodmass}}C0]
   C1-gzC0          enable gzip compression of the server's output
   C1-hC0           print this help information
   C1-inC0 C2{string}C0 input format: C3seganC0 or C3malletC0 [C6currentC0: C3{{.infmt}}C0]
   C1-jtC0 C2{num}C0    jitter percentage [C6currentC0: C3{{.jitter}}C0]
   C1-kC0 C2{num}C0     number of topics in the prior file; C30C0 means annotated topics + C3{{.added}}C0
   C1-lfC0 C2{file}C0   ledger file [C6currentC0: C3{{.ledgerfile}}C0]
   C1-lgC0 C2{string}C0 ledger backend: C3noneC0, C3sqliteC0 or C3pgsqlC0 [C6currentC0: C3{{.ledger}}C0]
   C1-llC0          take previous labels from the ledger when no export is given
   C1-mC0 C2{string}C0  mode [C6currentC0: C3{{.mode}}C0]
   C1-mdC0 C2{file}C0   mallet doc-topics file
   C1-mwC0 C2{file}C0   mallet topic-word-weights file
   C1-mcC0 C2{file}C0   mallet word-topic-counts file
   C1-odC0 C2{dir}C0    output directory [C6currentC0: C3{{.outdir}}C0]
   C1-pcC0          enable CPU profiling run
   C1-pgC0 C2{string}C0 supply full PostgreSQL credentials C4(*)C0
   C1-phC0 C2{file}C0   phi file [C6currentC0: C3{{.phi}}C0]
   C1-pmC0          enable MEM profiling run
   C1-rsC0 C2{string}C0 label conflict strategy: C3dropC0 or C3reassignC0 [C6currentC0: C3{{.strat}}C0]
   C1-saC0 C2{string}C0 server IP address [C6currentC0: C3{{.host}}C0]
   C1-sdC0 C2{num}C0    jitter seed; C30C0 seeds from the clock [C6currentC0: C3{{.seed}}C0]
   C1-spC0 C2{num}C0    server port [C6currentC0: C3{{.port}}C0]
   C1-tfC0 C2{file}C0   term frequency file [C6currentC0: C3{{.tf}}C0]
   C1-thC0 C2{file}C0   theta file [C6currentC0: C3{{.theta}}C0]
   C1-tnC0 C2{num}C0    ranked list length [C6currentC0: C3{{.topn}}C0]
   C1-vC0           print version info and exit
   C1-vbC0 C2{file}C0   vocabulary [C6currentC0: C3{{.vocab}}C0]
   C1-vvC0          print full version info and exit
     (*) S3exampleS0:
         C4"{\"Pass\": \"YOURPASSWORDHERE\" ,\"Host\": \"127.0.0.1\", \"Port\": 5432, \"DBName\": \"topicdistillery\" ,\"User\": \"tds_wr\"}"C0
     environment variables prefixed C3{{.envprefix}}_C0 override the configuration file: e.g. C4{{.envprefix}}_GOODMASS=0.8C0
`
)
