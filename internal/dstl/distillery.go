//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package dstl

import (
	"bytes"
	"context"
	"fmt"
	"github.com/e-gun/TopicDistillery/internal/gen"
	"github.com/e-gun/TopicDistillery/internal/geo"
	"github.com/e-gun/TopicDistillery/internal/ledger"
	"github.com/e-gun/TopicDistillery/internal/mdlfs"
	"github.com/e-gun/TopicDistillery/internal/mm"
	"github.com/e-gun/TopicDistillery/internal/rank"
	"github.com/e-gun/TopicDistillery/internal/recon"
	"github.com/e-gun/TopicDistillery/internal/str"
	"github.com/e-gun/TopicDistillery/internal/synth"
	"github.com/e-gun/TopicDistillery/internal/vis"
	"github.com/e-gun/TopicDistillery/internal/vv"
	"io"
	"math/rand"
	"path/filepath"
	"time"
)

const (
	COMP = "dstl"
)

// Distillery - runs the modes: load the model, hand it to the components, write what they make
type Distillery struct {
	Cfg    *str.CurrentConfiguration
	Msg    *mm.MessageMaker
	Ledger ledger.Ledger
}

// Results - everything the vis and serve modes hand out
type Results struct {
	Model  *mdlfs.Model
	Anns   []str.Annotation
	Labels map[int]string
	Vis    str.VisPayload
	LDAvis str.LDAvisPayload
	Map    []byte
}

func New(cfg *str.CurrentConfiguration, m *mm.MessageMaker, l ledger.Ledger) *Distillery {
	if m == nil {
		m = mm.Silent()
	}
	if l == nil {
		l = ledger.NoLedger{}
	}
	return &Distillery{Cfg: cfg, Msg: m, Ledger: l}
}

// outpath - relative output names land in Cfg.OutputDir
func (d *Distillery) outpath(fn string) string {
	if filepath.IsAbs(fn) {
		return fn
	}
	return filepath.Join(d.Cfg.OutputDir, fn)
}

// LoadModel - read the sampler's output in whichever format was configured
func (d *Distillery) LoadModel() (*mdlfs.Model, error) {
	const (
		MSG  = "loaded a %s model: %s topics, %s terms, %s documents"
		FAIL = "unknown input format '%s'"
	)

	var m *mdlfs.Model
	var err error

	switch d.Cfg.InputFormat {
	case vv.FMTSEGAN:
		m, err = mdlfs.LoadSegan(mdlfs.SeganFiles{
			Phi:     d.Cfg.PhiFile,
			Theta:   d.Cfg.ThetaFile,
			Vocab:   d.Cfg.VocabFile,
			TF:      d.Cfg.TermFreqFile,
			DocText: d.Cfg.DocTextFile,
		})
	case vv.FMTMALLET:
		m, err = mdlfs.LoadMallet(mdlfs.MalletFiles{
			DocTopics:   d.Cfg.MalletDocTopics,
			WordCounts:  d.Cfg.MalletWordCounts,
			WordWeights: d.Cfg.MalletWordWeights,
			DocText:     d.Cfg.DocTextFile,
		})
	default:
		return nil, str.NewProcError(COMP, str.ErrDegenerate, fmt.Sprintf(FAIL, d.Cfg.InputFormat))
	}
	if err != nil {
		return nil, err
	}

	r, _ := m.Theta.Dims()
	d.Msg.NOTE(fmt.Sprintf(MSG, d.Cfg.InputFormat, gen.FmtInt(m.K()), gen.FmtInt(m.Vocab.Len()), gen.FmtInt(r)))
	return m, nil
}

// LoadVocab - the vocabulary alone, which is all the prior mode needs from the model
func (d *Distillery) LoadVocab() (str.Vocabulary, error) {
	if d.Cfg.InputFormat == vv.FMTMALLET {
		return mdlfs.LoadMalletVocab(d.Cfg.MalletWordCounts)
	}
	return mdlfs.LoadVocab(d.Cfg.VocabFile)
}

// Annotations - the editor's export if there is one; else, if asked, the ones archived by the last prior run
func (d *Distillery) Annotations(ctx context.Context) ([]str.Annotation, error) {
	const (
		MSG1 = "%d annotations from '%s'"
		MSG2 = "%d annotations from ledger run %s (%s)"
		MSG3 = "no annotations: topics will go unlabelled"
	)

	if d.Cfg.ExportFile != "" {
		aa, err := mdlfs.LoadExport(d.Cfg.ExportFile)
		if err != nil {
			return nil, err
		}
		d.Msg.FYI(fmt.Sprintf(MSG1, len(aa), d.Cfg.ExportFile))
		return aa, nil
	}

	if d.Cfg.LabelsFromLedger {
		r, ok, err := d.Ledger.Latest(ctx, vv.MODEPRIOR)
		if err != nil {
			return nil, err
		}
		if ok {
			d.Msg.FYI(fmt.Sprintf(MSG2, len(r.Annotations), r.ID, r.Created.Format(time.RFC3339)))
			return r.Annotations, nil
		}
	}

	d.Msg.FYI(MSG3)
	return nil, nil
}

// Distill - rank, reconcile, project, and assemble
func (d *Distillery) Distill(ctx context.Context) (*Results, error) {
	const (
		MSG1 = "ranked the top %d words and documents of %d topics"
		MSG2 = "%d of %d topics carry a label"
		MSG3 = "projected %d topics"
	)

	start := time.Now()
	previous := time.Now()

	m, err := d.LoadModel()
	if err != nil {
		return nil, err
	}
	d.Msg.Timer("A1", "model loaded", start, previous)

	previous = time.Now()
	words, err := rank.AllTopWords(m.Phi, d.Cfg.TopN)
	if err != nil {
		return nil, err
	}
	docs, err := rank.AllTopDocs(m.Theta, d.Cfg.TopN)
	if err != nil {
		return nil, err
	}
	d.Msg.PEEK(fmt.Sprintf(MSG1, d.Cfg.TopN, m.K()))
	d.Msg.Timer("A2", "ranked lists built", start, previous)

	previous = time.Now()
	anns, err := d.Annotations(ctx)
	if err != nil {
		return nil, err
	}
	labels := make(map[int]string)
	if len(anns) > 0 {
		labels, err = recon.New(d.Cfg.ReconcileStrat, d.Msg).Reconcile(anns, words, m.Vocab)
		if err != nil {
			return nil, err
		}
		d.Msg.NOTE(fmt.Sprintf(MSG2, len(labels), m.K()))
	}
	d.Msg.Timer("A3", "labels reconciled", start, previous)

	previous = time.Now()
	pts, err := geo.Project(m.Phi, m.Theta, m.TF.DocLengths)
	if err != nil {
		return nil, err
	}
	d.Msg.PEEK(fmt.Sprintf(MSG3, len(pts)))
	d.Msg.Timer("A4", "topics projected", start, previous)

	previous = time.Now()
	vp, err := vis.Assemble(vis.Inputs{
		Vocab:      m.Vocab,
		DocText:    m.Docs,
		Phi:        m.Phi,
		TopWords:   words,
		TopDocs:    docs,
		Labels:     labels,
		Points:     pts,
		Milestones: d.Cfg.Milestones,
	})
	if err != nil {
		return nil, err
	}

	lp, err := vis.LDAvis(m.Phi, m.Theta, m.Vocab, m.TF)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err = vis.DistanceMapSized(pts, labels, d.Cfg.ChartWidth, d.Cfg.ChartHeight, &buf); err != nil {
		return nil, err
	}
	d.Msg.Timer("A5", "payloads assembled", start, previous)

	return &Results{Model: m, Anns: anns, Labels: labels, Vis: vp, LDAvis: lp, Map: buf.Bytes()}, nil
}

// RunVis - the "vis" mode: write data.json, vocab.json and the distance map
func (d *Distillery) RunVis(ctx context.Context) error {
	const (
		MSG = "wrote '%s'"
	)

	res, err := d.Distill(ctx)
	if err != nil {
		return err
	}

	fn := d.outpath(d.Cfg.VisFile)
	fp, err := mdlfs.WriteJSON(fn, res.Vis)
	if err != nil {
		return err
	}
	d.Msg.NOTE(fmt.Sprintf(MSG, fn))

	fn = d.outpath(d.Cfg.VocabOutFile)
	if _, err = mdlfs.WriteJSON(fn, res.Model.Vocab.Terms); err != nil {
		return err
	}
	d.Msg.FYI(fmt.Sprintf(MSG, fn))

	fn = d.outpath(d.Cfg.MapFile)
	_, err = mdlfs.WriteWith(fn, func(w io.Writer) error {
		_, e := w.Write(res.Map)
		return e
	})
	if err != nil {
		return err
	}
	d.Msg.FYI(fmt.Sprintf(MSG, fn))

	return d.Ledger.Record(ctx, ledger.NewRun(vv.MODEVIS, fp, res.Model.K(), res.Labels, res.Anns))
}

// RunLDAvis - the "ldavis" mode: the five arrays pyLDAvis wants
func (d *Distillery) RunLDAvis(ctx context.Context) error {
	const (
		MSG = "wrote '%s'"
	)

	m, err := d.LoadModel()
	if err != nil {
		return err
	}
	lp, err := vis.LDAvis(m.Phi, m.Theta, m.Vocab, m.TF)
	if err != nil {
		return err
	}

	fn := d.outpath(d.Cfg.LDAvisFile)
	fp, err := mdlfs.WriteJSON(fn, lp)
	if err != nil {
		return err
	}
	d.Msg.NOTE(fmt.Sprintf(MSG, fn))

	return d.Ledger.Record(ctx, ledger.NewRun(vv.MODELDAVIS, fp, m.K(), nil, nil))
}

// Synthesizer - configured from Cfg; Seed 0 means "seed from the clock"
func (d *Distillery) Synthesizer() (*synth.Synthesizer, error) {
	seed := d.Cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return synth.New(synth.Options{
		GoodMass: d.Cfg.GoodMass,
		Jitter:   d.Cfg.Jitter,
		Rnd:      rand.New(rand.NewSource(seed)),
		Msg:      d.Msg,
	})
}

// BuildPrior - conflate, then synthesize newK topics; newK < 1 means "one per annotation plus Cfg.AddedK"
func (d *Distillery) BuildPrior(anns []str.Annotation, vocab str.Vocabulary, newK int) ([]str.SynthesizedTopic, error) {
	const (
		MSG = "%d annotations conflate to %d; asking for %d topics"
	)

	conflated := recon.Conflate(anns)
	if newK < 1 {
		newK = synth.DefaultNewK(len(conflated), d.Cfg.AddedK)
	}
	d.Msg.FYI(fmt.Sprintf(MSG, len(anns), len(conflated), newK))

	s, err := d.Synthesizer()
	if err != nil {
		return nil, err
	}
	return s.Build(newK, conflated, vocab)
}

// PriorText - BuildPrior() rendered as the prior-topic file
func (d *Distillery) PriorText(anns []str.Annotation, vocab str.Vocabulary, newK int) ([]byte, error) {
	topics, err := d.BuildPrior(anns, vocab, newK)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err = mdlfs.WritePrior(&buf, topics); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RunPrior - the "prior" mode: editor export -> prior-topic file for the next sampler run
func (d *Distillery) RunPrior(ctx context.Context) error {
	const (
		MSG1  = "wrote %d prior topics to '%s'"
		FAIL1 = "no editor export configured"
		FAIL2 = "'%s' announces %d topics but %d were written"
	)

	if d.Cfg.ExportFile == "" {
		return str.NewProcError(COMP, str.ErrMissingInput, FAIL1)
	}

	vocab, err := d.LoadVocab()
	if err != nil {
		return err
	}
	anns, err := mdlfs.LoadExport(d.Cfg.ExportFile)
	if err != nil {
		return err
	}

	topics, err := d.BuildPrior(anns, vocab, d.Cfg.NewK)
	if err != nil {
		return err
	}

	fn := d.outpath(d.Cfg.PriorFile)
	fp, err := mdlfs.WritePriorFile(fn, topics)
	if err != nil {
		return err
	}

	// the re-run driver trusts the header; make sure it is right
	k, err := mdlfs.ReadPriorTopicCount(fn)
	if err != nil {
		return err
	}
	if k != len(topics) {
		return str.NewProcError(COMP, str.ErrMalformed, fmt.Sprintf(FAIL2, fn, k, len(topics))).WithPath(fn)
	}
	d.Msg.NOTE(fmt.Sprintf(MSG1, k, fn))

	labels := make(map[int]string)
	for _, t := range topics {
		if t.Label != "" {
			labels[t.Index] = t.Label
		}
	}
	return d.Ledger.Record(ctx, ledger.NewRun(vv.MODEPRIOR, fp, len(topics), labels, anns))
}

// Runs - the "runs" mode: list what the ledger holds
func (d *Distillery) Runs(ctx context.Context, w io.Writer) error {
	const (
		HEAD = "%-36s  %-20s  %-6s  %6s  %s\n"
		LINE = "%-36s  %-20s  %-6s  %6d  %s\n"
		NONE = "the ledger is empty"
	)

	ss, err := d.Ledger.List(ctx)
	if err != nil {
		return err
	}
	if len(ss) == 0 {
		_, err = fmt.Fprintln(w, NONE)
		return err
	}

	fmt.Fprintf(w, HEAD, "id", "created", "mode", "topics", "fingerprint")
	for _, s := range ss {
		if _, err = fmt.Fprintf(w, LINE, s.ID, s.Created.Format("2006-01-02 15:04:05"), s.Mode, s.NTopics, s.Fingerprint); err != nil {
			return err
		}
	}
	return nil
}
