//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mm

import (
	"fmt"
	"github.com/sirupsen/logrus"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

//
// TERMINAL OUTPUT/MESSAGES
//

const (
	MSGMAND              = -1
	MSGCRIT              = 0
	MSGWARN              = 1
	MSGNOTE              = 2
	MSGFYI               = 3
	MSGPEEK              = 4
	MSGTMI               = 5
	TIMETRACKERMSGTHRESH = MSGFYI
	RESET                = "\033[0m"
	BLUE1                = "\033[38;5;38m"  // DeepSkyBlue2
	CYAN2                = "\033[38;5;117m" // SkyBlue1
	GREEN                = "\033[38;5;70m"  // Chartreuse3
	RED1                 = "\033[38;5;160m" // Red3
	YELLOW1              = "\033[38;5;178m" // Gold3
	GREY3                = "\033[38;5;242m" // Grey42
	BLINK                = "\033[30;0;5m"
	PANIC                = "[%s v.%s] UNRECOVERABLE ERROR"
	PANIC2               = "[%s v.%s] (%s) UNRECOVERABLE ERROR"
)

// MessageMaker - levelled messages; LLvl decides what gets through, logrus decides how it looks
type MessageMaker struct {
	Lnc    time.Time
	BW     bool
	Caller string
	LLvl   int
	LNm    string
	SNm    string
	Ver    string
	Win    bool
	Log    *logrus.Logger
	Exit   func(int)
	mtx    sync.Mutex
}

func NewMessageMaker(lnm string, snm string, ver string) *MessageMaker {
	m := &MessageMaker{
		Lnc:  time.Now(),
		LNm:  lnm,
		SNm:  snm,
		Ver:  ver,
		Win:  runtime.GOOS == "windows",
		Exit: os.Exit,
	}
	m.Log = newlogger(os.Stderr, m.Win)
	return m
}

// Silent - a MessageMaker that never says anything
func Silent() *MessageMaker {
	m := NewMessageMaker("", "", "")
	m.LLvl = MSGMAND - 1
	m.Log.SetOutput(io.Discard)
	return m
}

func newlogger(w io.Writer, bw bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.TraceLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.TimeOnly,
		DisableColors:   bw,
	})
	return l
}

// SetOutput - send the messages somewhere else (tests use a buffer)
func (m *MessageMaker) SetOutput(w io.Writer) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.Log.SetOutput(w)
}

// SetBW - drop the colors
func (m *MessageMaker) SetBW(bw bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.BW = bw
	if tf, ok := m.Log.Formatter.(*logrus.TextFormatter); ok {
		tf.DisableColors = bw || m.Win
	}
}

// Emit - send a message to the log if the threshold permits
func (m *MessageMaker) Emit(message string, threshold int) {
	// sample output: "INFO[10:24:28] prior file has 24 topics   svc=TDS"
	if m.LLvl < threshold {
		return
	}

	lvl := logrus.InfoLevel
	switch threshold {
	case MSGCRIT:
		lvl = logrus.ErrorLevel
	case MSGWARN:
		lvl = logrus.WarnLevel
	case MSGPEEK:
		lvl = logrus.DebugLevel
	case MSGTMI:
		lvl = logrus.TraceLevel
	default:
		// MSGMAND, MSGNOTE, MSGFYI
	}

	e := m.Log.WithField("svc", m.SNm)
	if m.Caller != "" {
		e = e.WithField("fnc", m.Caller)
	}
	e.Log(lvl, message)
}

func (m *MessageMaker) MAND(s string) { m.Emit(s, MSGMAND) }
func (m *MessageMaker) CRIT(s string) { m.Emit(s, MSGCRIT) }
func (m *MessageMaker) WARN(s string) { m.Emit(s, MSGWARN) }
func (m *MessageMaker) NOTE(s string) { m.Emit(s, MSGNOTE) }
func (m *MessageMaker) FYI(s string)  { m.Emit(s, MSGFYI) }
func (m *MessageMaker) PEEK(s string) { m.Emit(s, MSGPEEK) }
func (m *MessageMaker) TMI(s string)  { m.Emit(s, MSGTMI) }

// Color - color text with ANSI codes by swapping out pseudo-tags
func (m *MessageMaker) Color(tagged string) string {
	// "[git: C4%sC0]" ==> green text for the %s
	swap := strings.NewReplacer("C1", "", "C2", "", "C3", "", "C4", "", "C5", "", "C6", "", "C7", "", "C0", "")

	if !m.Win && !m.BW {
		swap = strings.NewReplacer("C1", YELLOW1, "C2", CYAN2, "C3", BLUE1, "C4", GREEN, "C5", RED1,
			"C6", GREY3, "C7", BLINK, "C0", RESET)
	}
	return swap.Replace(tagged)
}

// Styled - style text with ANSI codes by swapping out pseudo-tags
func (m *MessageMaker) Styled(tagged string) string {
	const (
		BOLD    = "\033[1m"
		ITAL    = "\033[3m"
		UNDER   = "\033[4m"
		REVERSE = "\033[7m"
		STRIKE  = "\033[9m"
	)
	swap := strings.NewReplacer("S1", "", "S2", "", "S3", "", "S4", "", "S5", "", "S0", "")

	if !m.Win && !m.BW {
		swap = strings.NewReplacer("S1", BOLD, "S2", ITAL, "S3", UNDER, "S4", STRIKE, "S5", REVERSE,
			"S0", RESET)
	}
	return swap.Replace(tagged)
}

func (m *MessageMaker) ColStyle(tagged string) string {
	return m.Styled(m.Color(tagged))
}

// EC - report the error and the caller; then quit
func (m *MessageMaker) EC(err error) {
	if m.ER(err) {
		m.ExitOrHang(1)
	}
}

// ER - report the error and the caller; true if there was one
func (m *MessageMaker) ER(err error) bool {
	if err == nil {
		return false
	}
	p := fmt.Sprintf(PANIC, m.LNm, m.Ver)
	if m.Caller != "" {
		p = fmt.Sprintf(PANIC2, m.LNm, m.Ver, m.Caller)
	}
	m.Log.WithField("svc", m.SNm).WithError(err).Error(p)
	return true
}

// ExitOrHang - Windows should hang to keep the error visible before the window closes and hides it
func (m *MessageMaker) ExitOrHang(e int) {
	const (
		HANG = `Execution suspended. %s is now frozen. Note any errors above. Execution will halt after %d seconds.`
		SUSP = 60
	)
	if m.Win {
		m.MAND(fmt.Sprintf(HANG, m.LNm, SUSP))
		time.Sleep(SUSP * time.Second)
	}
	m.Exit(e)
}

// Timer - report how much time elapsed between A and B
func (m *MessageMaker) Timer(letter string, o string, start time.Time, previous time.Time) {
	// sample output: "[B: 1.284s][Δ: 0.402s] geometry for 35 topics"
	d := fmt.Sprintf("[Δ: %.3fs] ", time.Since(previous).Seconds())
	o = fmt.Sprintf("[%s: %.3fs]", letter, time.Since(start).Seconds()) + d + o
	m.Emit(o, TIMETRACKERMSGTHRESH)
}

// Clone - a MessageMaker that shares the logger but reports a different caller
func (m *MessageMaker) Clone(caller string) *MessageMaker {
	return &MessageMaker{
		Lnc:    m.Lnc,
		BW:     m.BW,
		Caller: caller,
		LLvl:   m.LLvl,
		LNm:    m.LNm,
		SNm:    m.SNm,
		Ver:    m.Ver,
		Win:    m.Win,
		Log:    m.Log,
		Exit:   m.Exit,
	}
}
