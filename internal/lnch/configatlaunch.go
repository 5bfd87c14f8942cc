//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/mm"
	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/e-gun/TopicDistillery/internal/vv"
	"github.com/spf13/viper"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"text/template"
)

var (
	Config *str.CurrentConfiguration
	Msg    = mm.NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION)
)

const (
	ACTRUN     = ""
	ACTHELP    = "help"
	ACTVERSION = "version"
	ACTVERFULL = "fullversion"
)

// ConfigAtLaunch - defaults, then the config file and the environment, then the command line
func ConfigAtLaunch() {
	const (
		FAIL1 = "Could not parse the configuration in '%s'. Skipping it and using built-in defaults instead."
		FAIL2 = "ConfigAtLaunch() failed to execute help text template"
		MSG1  = "'%s'%s loaded"
	)

	Config = BuildDefaultConfig()
	args := os.Args[1:]

	cf := FindConfigFile(args)
	ferr := ReadConfigFile(cf, Config)
	if ferr != nil {
		Msg.CRIT(fmt.Sprintf(FAIL1, cf))
		Config = BuildDefaultConfig()
	}

	act, err := ParseArgs(args, Config)
	Msg.EC(err)
	UpdateMessageMakerWithConfig(Msg)

	switch act {
	case ACTHELP:
		PrintVersion(*Config)
		PrintBuildInfo(*Config)
		var b bytes.Buffer
		t := template.Must(template.New("").Parse(vv.HELPTEXTTEMPLATE))
		if ee := t.Execute(&b, helpmap(Config, cf)); ee != nil {
			Msg.CRIT(FAIL2)
		}
		fmt.Println(Msg.ColStyle(b.String()))
		os.Exit(0)
	case ACTVERSION:
		fmt.Println(vv.VERSION + VersSuppl)
		os.Exit(1)
	case ACTVERFULL:
		PrintVersion(*Config)
		PrintBuildInfo(*Config)
		PrintCopyright()
		os.Exit(1)
	}

	Msg.EC(Validate(Config))

	y := ""
	if cf == "" || ferr != nil {
		y = " *not*"
	}
	Msg.TMI(fmt.Sprintf(MSG1, cf, y))
}

// BuildDefaultConfig - return a CurrentConfiguration filled out with various default values
func BuildDefaultConfig() *str.CurrentConfiguration {
	var c str.CurrentConfiguration
	c.AddedK = vv.ADDEDTOPICS
	c.BlackAndWhite = vv.BLACKANDWHITE
	c.ChartHeight = vv.MAPCHRTHEIGHT
	c.ChartWidth = vv.MAPCHRTWIDTH
	c.DocTextFile = vv.DOCTEXTFILE
	c.EchoLog = vv.DEFAULTECHOLOGLEVEL
	c.ExportFile = ""
	c.GoodMass = vv.GOODMASS
	c.Gzip = vv.USEGZIP
	c.HostIP = vv.SERVEDFROMHOST
	c.HostPort = vv.SERVEDFROMPORT
	c.InputFormat = vv.FMTSEGAN
	c.Jitter = vv.JITTER
	c.LabelsFromLedger = false
	c.LDAvisFile = vv.LDAVISFILE
	c.LedgerFile = vv.LEDGERFILE
	c.LedgerType = vv.LEDGERNONE
	c.LogLevel = vv.DEFAULTGOLOGLEVEL
	c.MapFile = vv.MAPFILE
	c.Milestones = append([]int{}, vv.MILESTONES...)
	c.Mode = vv.MODEDEF
	c.NewK = 0
	c.OutputDir = vv.OUTPUTDIR
	c.PhiFile = vv.PHIFILE
	c.PriorFile = vv.PRIORFILE
	c.ProfileCPU = false
	c.ProfileMEM = false
	c.ReconcileStrat = vv.RECONDEFAULT
	c.Seed = 0
	c.TermFreqFile = vv.TFFILE
	c.ThetaFile = vv.THETAFILE
	c.TopN = vv.TOPN
	c.VisFile = vv.VISFILE
	c.VocabFile = vv.VOCABFILE
	c.VocabOutFile = vv.VOCABOUTFILE

	c.PGLogin = str.PostgresLogin{
		Host:   vv.DEFAULTPSQLHOST,
		Port:   vv.DEFAULTPSQLPORT,
		User:   vv.DEFAULTPSQLUSER,
		Pass:   "",
		DBName: vv.DEFAULTPSQLDB,
	}

	return &c
}

// FindConfigFile - "-c file" wins; then ~/.config/tds-conf.yaml; then ./tds-conf.yaml; "" if none of these exist
func FindConfigFile(args []string) string {
	for i, a := range args {
		if a == "-c" && i+1 < len(args) {
			return args[i+1]
		}
	}

	var candidates []string
	if h, e := os.UserHomeDir(); e == nil {
		candidates = append(candidates, fmt.Sprintf(vv.CONFIGALTAPTH, h)+vv.CONFIGBASIC)
	}
	candidates = append(candidates, vv.CONFIGBASIC)

	for _, c := range candidates {
		if _, e := os.Stat(c); e == nil {
			return c
		}
	}
	return ""
}

// ReadConfigFile - overlay a yaml/json file and TDS_* environment variables onto cfg; fn == "" means environment only
func ReadConfigFile(fn string, cfg *str.CurrentConfiguration) error {
	v := viper.New()
	v.SetEnvPrefix(vv.ENVPREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, k := range configkeys() {
		if err := v.BindEnv(k); err != nil {
			return err
		}
	}

	if fn != "" {
		v.SetConfigFile(fn)
		if ext := strings.TrimPrefix(filepath.Ext(fn), "."); ext == "" {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}

	// mapstructure writes into an existing slice instead of replacing it
	if v.IsSet("milestones") {
		cfg.Milestones = nil
	}

	return v.Unmarshal(cfg)
}

// configkeys - lowercased field names of CurrentConfiguration; the PostgreSQL login is "pglogin.host" etc.
func configkeys() []string {
	var kk []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			k := prefix + strings.ToLower(f.Name)
			if f.Type.Kind() == reflect.Struct {
				walk(f.Type, k+".")
				continue
			}
			kk = append(kk, k)
		}
	}
	walk(reflect.TypeOf(str.CurrentConfiguration{}), "")
	return kk
}

// ParseArgs - apply the command line switches to cfg
func ParseArgs(args []string, cfg *str.CurrentConfiguration) (string, error) {
	const (
		FAIL1 = "could not parse your information as a valid collection of credentials: %w"
		FAIL2 = "'%s' needs a value"
		FAIL3 = "'%s' wants a number: %w"
	)

	next := func(i int) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf(FAIL2, args[i])
		}
		return args[i+1], nil
	}

	atoi := func(i int) (int, error) {
		s, err := next(i)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf(FAIL3, args[i], err)
		}
		return n, nil
	}

	strarg := func(i int, dst *string) error {
		s, err := next(i)
		if err == nil {
			*dst = s
		}
		return err
	}

	intarg := func(i int, dst *int) error {
		n, err := atoi(i)
		if err == nil {
			*dst = n
		}
		return err
	}

	var err error
	for i, a := range args {
		switch a {
		case "-bw":
			cfg.BlackAndWhite = true
		case "-c":
			// handled by FindConfigFile()
		case "-dt":
			err = strarg(i, &cfg.DocTextFile)
		case "-el":
			err = intarg(i, &cfg.EchoLog)
		case "-ex":
			err = strarg(i, &cfg.ExportFile)
		case "-gl":
			err = intarg(i, &cfg.LogLevel)
		case "-gm":
			var s string
			if s, err = next(i); err == nil {
				cfg.GoodMass, err = strconv.ParseFloat(s, 64)
				if err != nil {
					err = fmt.Errorf(FAIL3, a, err)
				}
			}
		case "-gz":
			cfg.Gzip = true
		case "-h":
			return ACTHELP, nil
		case "-in":
			err = strarg(i, &cfg.InputFormat)
		case "-jt":
			err = intarg(i, &cfg.Jitter)
		case "-k":
			err = intarg(i, &cfg.NewK)
		case "-lf":
			err = strarg(i, &cfg.LedgerFile)
		case "-lg":
			err = strarg(i, &cfg.LedgerType)
		case "-ll":
			cfg.LabelsFromLedger = true
		case "-m":
			err = strarg(i, &cfg.Mode)
		case "-mc":
			err = strarg(i, &cfg.MalletWordCounts)
		case "-md":
			err = strarg(i, &cfg.MalletDocTopics)
		case "-mw":
			err = strarg(i, &cfg.MalletWordWeights)
		case "-od":
			err = strarg(i, &cfg.OutputDir)
		case "-pc":
			cfg.ProfileCPU = true
		case "-pg":
			var js string
			if js, err = next(i); err == nil {
				var pl str.PostgresLogin
				if e := json.Unmarshal([]byte(js), &pl); e != nil {
					err = fmt.Errorf(FAIL1, e)
				} else {
					cfg.PGLogin = pl
				}
			}
		case "-ph":
			err = strarg(i, &cfg.PhiFile)
		case "-pm":
			cfg.ProfileMEM = true
		case "-rs":
			err = strarg(i, &cfg.ReconcileStrat)
		case "-sa":
			err = strarg(i, &cfg.HostIP)
		case "-sd":
			var sd int
			if sd, err = atoi(i); err == nil {
				cfg.Seed = int64(sd)
			}
		case "-sp":
			err = intarg(i, &cfg.HostPort)
		case "-tf":
			err = strarg(i, &cfg.TermFreqFile)
		case "-th":
			err = strarg(i, &cfg.ThetaFile)
		case "-tn":
			err = intarg(i, &cfg.TopN)
		case "-v":
			return ACTVERSION, nil
		case "-vb":
			err = strarg(i, &cfg.VocabFile)
		case "-vv":
			return ACTVERFULL, nil
		default:
			// values for the switches land here
		}
		if err != nil {
			return ACTRUN, err
		}
	}
	return ACTRUN, nil
}

// Validate - refuse settings the components cannot work with
func Validate(cfg *str.CurrentConfiguration) error {
	const (
		FAIL1 = "goodmass must lie strictly between 0 and 1: %v"
		FAIL2 = "jitter must lie between 0 and 99: %d"
		FAIL3 = "unknown %s: '%s'"
		FAIL4 = "the ranked list length must be at least 1: %d"
		FAIL5 = "cannot ask for a negative number of topics: %d"
	)

	bad := func(msg string) error {
		return str.NewProcError("config", str.ErrDegenerate, msg)
	}

	oneof := func(what string, val string, ok ...string) error {
		for _, o := range ok {
			if val == o {
				return nil
			}
		}
		return bad(fmt.Sprintf(FAIL3, what, val))
	}

	var errs []error
	if cfg.GoodMass <= 0 || cfg.GoodMass >= 1 {
		errs = append(errs, bad(fmt.Sprintf(FAIL1, cfg.GoodMass)))
	}
	if cfg.Jitter < 0 || cfg.Jitter >= 100 {
		errs = append(errs, bad(fmt.Sprintf(FAIL2, cfg.Jitter)))
	}
	if cfg.TopN < 1 {
		errs = append(errs, bad(fmt.Sprintf(FAIL4, cfg.TopN)))
	}
	if cfg.NewK < 0 {
		errs = append(errs, bad(fmt.Sprintf(FAIL5, cfg.NewK)))
	}
	errs = append(errs,
		oneof("mode", cfg.Mode, vv.MODEVIS, vv.MODEPRIOR, vv.MODELDAVIS, vv.MODESERVE, vv.MODERUNS),
		oneof("input format", cfg.InputFormat, vv.FMTSEGAN, vv.FMTMALLET),
		oneof("reconcile strategy", cfg.ReconcileStrat, vv.RECONDROP, vv.RECONREASSIGN),
		oneof("ledger", cfg.LedgerType, vv.LEDGERNONE, vv.LEDGERSQLITE, vv.LEDGERPGSQL))

	if len(cfg.Milestones) == 0 {
		cfg.Milestones = append([]int{}, vv.MILESTONES...)
	}

	return errors.Join(errs...)
}

func helpmap(cfg *str.CurrentConfiguration, cf string) map[string]interface{} {
	if cf == "" {
		cf = vv.CONFIGBASIC
	}
	return map[string]interface{}{
		"added":      cfg.AddedK,
		"conffile":   cf,
		"doctext":    cfg.DocTextFile,
		"echoll":     cfg.EchoLog,
		"envprefix":  vv.ENVPREFIX,
		"export":     cfg.ExportFile,
		"goodmass":   cfg.GoodMass,
		"host":       cfg.HostIP,
		"infmt":      cfg.InputFormat,
		"jitter":     cfg.Jitter,
		"ldavisfile": cfg.LDAvisFile,
		"ledger":     cfg.LedgerType,
		"ledgerfile": cfg.LedgerFile,
		"mapfile":    cfg.MapFile,
		"mode":       cfg.Mode,
		"outdir":     cfg.OutputDir,
		"phi":        cfg.PhiFile,
		"port":       cfg.HostPort,
		"priorfile":  cfg.PriorFile,
		"seed":       cfg.Seed,
		"strat":      cfg.ReconcileStrat,
		"tdsll":      cfg.LogLevel,
		"tf":         cfg.TermFreqFile,
		"theta":      cfg.ThetaFile,
		"topn":       cfg.TopN,
		"visfile":    cfg.VisFile,
		"vocab":      cfg.VocabFile,
	}
}
